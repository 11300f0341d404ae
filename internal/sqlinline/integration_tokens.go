package sqlinline

const QSelectIntegrationToken = `--sql 0b6e3d97-52af-4c18-8e90-d4a7f1c5b382
select token
from integration_tokens
where provider = $1::text;
`

const QUpsertIntegrationToken = `--sql ba52c70e-8d14-4f69-a3b7-26e9f0d8c451
insert into integration_tokens(provider, token, properties, updated_at)
values ($1::text, $2::text, coalesce($3::jsonb, '{}'::jsonb), now())
on conflict (provider) do update
set token = excluded.token,
	properties = excluded.properties,
	updated_at = now();
`
