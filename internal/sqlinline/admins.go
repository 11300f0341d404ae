package sqlinline

// The admins table is an existence-only allow-list: the row's presence
// grants access, its content is irrelevant.

const QAdminExists = `--sql e7a1d4f9-0b62-45c8-93ae-5d27c8b0f316
select exists(select 1 from admins where user_id = $1::uuid);
`

const QInsertAdmin = `--sql 48c9e2b7-a5d0-4631-bf84-09a6d1e37c52
insert into admins(user_id, created_at)
values ($1::uuid, now())
on conflict (user_id) do nothing;
`

const QDeleteAdmin = `--sql d05b7a38-91f4-4ec2-ac16-3e84f2d9b670
delete from admins where user_id = $1::uuid;
`
