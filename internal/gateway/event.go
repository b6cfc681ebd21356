package gateway

// Опкод шлюза: все серверные события уходят как DISPATCH
const OpcodeDispatch = 0

// Типы событий
const (
	EventMessageCreate = "MESSAGE_CREATE"
	EventMessageUpdate = "MESSAGE_UPDATE"
	EventMessageDelete = "MESSAGE_DELETE"
)

// Envelope — конверт события в формате {op, d, s, t}
type Envelope struct {
	Op   int         `json:"op"`
	Data interface{} `json:"d"`
	Seq  int64       `json:"s"`
	Type string      `json:"t"`
}
