package sqlinline

const QInsertMail = `--sql 7b3f0c92-4e87-4a15-bd60-28c5e9f1a743
insert into mail(id, to_addrs, bcc_addrs, from_addr, reply_to, subject, body_text, body_html, attachments, status, created_at)
values ($1::uuid, $2::text[], $3::text[], $4::text, $5::text, $6::text, $7::text, $8::text, $9::jsonb, $10::text, now());
`

// Claims one pending entry for delivery; skip-locked so several relay
// instances never fight over the same row.
const QClaimPendingMail = `--sql a9e61d24-8cf0-47b3-92d5-6b04f8c3e197
update mail
set status = 'SENDING'
where id = (
	select id from mail
	where status = 'PENDING'
	order by created_at
	limit 1
	for update skip locked
)
returning id, to_addrs, bcc_addrs, from_addr, reply_to, subject, body_text, body_html, attachments;
`

const QMarkMailStatus = `--sql 30c8f5a1-db96-4720-8e4b-f72a1d60c935
update mail
set status = $2::text,
	last_error = nullif($3::text, ''),
	sent_at = case when $2::text = 'SENT' then now() else sent_at end
where id = $1::uuid;
`
