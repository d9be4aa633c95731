package sqlinline

const QSelectProfile = `--sql e7ddeaba-3f8b-4123-83d0-b1d276524db5
select plan, coalesce(front_bg_url, ''), coalesce(back_bg_url, '')
from profiles
where user_id = $1::text;
`

const QUpsertProfileBackgrounds = `--sql 23beed9e-0326-407e-98ef-d3c3fa53e8df
insert into profiles(user_id, plan, front_bg_url, back_bg_url, updated_at)
values ($1::text, 'free', nullif($2::text, ''), nullif($3::text, ''), now())
on conflict (user_id) do update
set front_bg_url = nullif(excluded.front_bg_url, ''),
    back_bg_url = nullif(excluded.back_bg_url, ''),
    updated_at = now()
returning plan, coalesce(front_bg_url, ''), coalesce(back_bg_url, '');
`

const QSetProfilePlan = `--sql 8a8d4b94-a94d-4176-8567-8b0f75c22c74
insert into profiles(user_id, plan, updated_at)
values ($1::text, $2::text, now())
on conflict (user_id) do update
set plan = excluded.plan,
    updated_at = now();
`
