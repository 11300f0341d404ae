package sqlinline

// The numbering transaction reads the counter with a row lock, so two
// concurrent submissions can never observe the same value.

const QSelectCounterForUpdate = `--sql 3f2a9c1e-7b44-4d2a-9e61-5a8c0d4f7b21
select value
from counters
where name = $1::text
for update;
`

const QInsertCounter = `--sql b8d14e72-2c9a-4f06-8d3b-91e5a7c2f430
insert into counters(name, value)
values ($1::text, $2::bigint);
`

const QUpdateCounter = `--sql 6a0f3d85-e912-4b7c-a254-c7d89e1b3f66
update counters
set value = $2::bigint
where name = $1::text;
`
