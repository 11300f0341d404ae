package sqlinline

const QInsertUser = `--sql f16d8a03-25c9-4be7-a840-91d3e6f0b527
insert into users(id, email, password_hash, created_at)
values ($1::uuid, $2::text, $3::text, $4::timestamptz);
`

const QSelectUserByEmail = `--sql 84b0c6e9-7f12-4d58-9a3c-e05d27b841f6
select id, email, password_hash, created_at
from users
where email = $1::text;
`

const QSelectUserByID = `--sql 2e95f7d0-13a8-46cb-b2e4-7c680a9d5f13
select id, email, password_hash, created_at
from users
where id = $1::uuid;
`

const QUpdateUserPassword = `--sql c47a2e81-69fd-40b5-8d17-f3b9e0c6a258
update users
set password_hash = $2::text
where id = $1::uuid;
`
