package sqlinline

const QInsertReceipt = `--sql 1c7e5b09-4a38-42d1-b6f2-8e90d3a5c714
insert into receipts(
	number, association, address, association_object,
	donor, amount, email, donation_date, payment_method,
	purpose, signer_name, signer_uid, file_url, created_at
)
values (
	$1::bigint, $2::text, $3::text, $4::text,
	$5::text, $6::numeric, nullif($7::text, ''), $8::date, $9::text,
	$10::text, $11::text, $12::uuid, $13::text, now()
);
`

const QSelectReceiptByNumber = `--sql 9e4b2f60-d1c7-48a5-bb39-72f0e6a8d154
select number, association, address, association_object,
	donor, amount, email, donation_date, payment_method,
	purpose, signer_name, signer_uid, file_url, created_at
from receipts
where number = $1::bigint;
`

const QListReceipts = `--sql 52d8a3c1-6f0e-4297-8b4d-e13f9c57a082
select number, donor, amount, donation_date, payment_method, signer_name, file_url, created_at
from receipts
order by number desc
limit $1::int;
`
