package mcpserver

// PortalFormatContract describes the portal document that LLM clients
// should follow when editing portal/portal.json.
const PortalFormatContract = `# Portal Document Format

portal/portal.json is the single hand-authored source for the node. Every
field is optional; a field holding the wrong JSON type is ignored.

## Fields

| Field | Type | Used for |
|---|---|---|
| ` + "`entity_name`" + ` | string | entity.name; falls back to the part of ` + "`subtitle`" + ` before "—" |
| ` + "`subtitle`" + ` | string | fallback entity name |
| ` + "`canonical`" + ` | string | entity.canonical, base of the node page and machine entry URLs |
| ` + "`node_page`" + ` | string | node page URL (default: canonical + /node/) |
| ` + "`machine_entry`" + ` | string | descriptor URL (default: canonical + /.well-known/node.json) |
| ` + "`entity_type`" + ` | string | entity.type (default person_or_studio) |
| ` + "`node_version`" + ` | string or number | node_version as a string (default 1.0); numbers keep their literal text |
| ` + "`updated_utc`" + ` | string or number | pins updated_utc; otherwise the build time is used |
| ` + "`policy_overrides`" + ` | object | replaces keys of the default policy, one level deep |
| ` + "`wallet`" + `, ` + "`pgp`" + ` | string | trust.signature |
| ` + "`attestations`" + ` | array | trust.attestations, copied verbatim |
| ` + "`schema`" + ` | object | copied verbatim; ` + "`type`, `sameAs`, `publishingPrinciples`, `contactUrl`" + ` feed the page JSON-LD |
| ` + "`generate_node_page`" + ` | bool | only ` + "`false`" + ` disables node/index.html |
| ` + "`sections`" + ` | array | ` + "`{title, items: [{name|label, url, meta}]}`" + ` |

## Sections

Sections are matched by a case-insensitive substring of their title; the
first matching section wins.

- human: "human", "给人", "人看"
- machine: "machine", "agent", "ai", "机器"
- executable: "executable", "执行", "agent pages", "网页即"

Items without a url are dropped. An item's name defaults to its label, then
its url. The machine list always starts with the node page and the machine
entry; section items repeating either URL are removed.

## Example

` + "```" + `json
{
  "entity_name": "Ada Studio",
  "canonical": "https://ada.example/",
  "policy_overrides": {"tracking": "none"},
  "sections": [
    {"title": "Human Links", "items": [{"name": "Blog", "url": "https://ada.example/blog/"}]},
    {"title": "Machine", "items": [{"name": "Feed", "url": "https://ada.example/feed.xml", "meta": "RSS"}]}
  ],
  "schema": {"type": "Organization", "sameAs": ["https://github.com/ada"]}
}
` + "```" + `
`
