package sqlinline

const QInsertPasswordReset = `--sql 5d3c8b1f-a760-4e29-bc45-08e1f9d2a637
insert into password_resets(token, user_id, expires_at, used)
values ($1::uuid, $2::uuid, $3::timestamptz, false);
`

const QSelectPasswordReset = `--sql 91f4e6a2-0c58-4d73-ae19-b60d3f8c2e45
select user_id, expires_at, used
from password_resets
where token = $1::uuid;
`

const QMarkPasswordResetUsed = `--sql 68a0d9c5-4eb1-47f2-93d8-1c5b7e0a4f26
update password_resets
set used = true
where token = $1::uuid;
`
