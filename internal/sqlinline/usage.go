package sqlinline

const QSelectCardsUsed = `--sql b0e40b1a-1151-430d-9699-bf2879bfe046
select cards_used
from usage_counters
where user_id = $1::text;
`

// QIncrementCardsUsed adds to the counter only while the ceiling holds, so a
// pair of concurrent requests cannot push a free-plan user past the limit.
const QIncrementCardsUsed = `--sql b180cb95-e472-458f-bbe9-03b15580533a
insert into usage_counters(user_id, cards_used, updated_at)
values ($1::text, least($2::int, $3::int), now())
on conflict (user_id) do update
set cards_used = usage_counters.cards_used + $2::int,
    updated_at = now()
where usage_counters.cards_used + $2::int <= $3::int
returning cards_used;
`
