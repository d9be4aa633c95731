package sqlinline

const QInsertGeneration = `--sql 7e355b09-93bc-45e2-8745-7d399fc79ac4
insert into generations(id, user_id, notes, mode, style, requested_count, title, output, locale, country, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, $5::int, $6::text, $7::jsonb, nullif($8::text, ''), nullif($9::text, ''), now());
`

const QSelectRecentGenerations = `--sql e8a5eb27-56da-4383-afae-21db8b6655dc
select id, title, mode, style, requested_count, output, created_at
from generations
where user_id = $1::text
order by created_at desc
limit $2::int;
`
