package models

// ConnectionState describes the backing database connection.
type ConnectionState string

const (
	ConnectionConnected    ConnectionState = "connected"
	ConnectionConnecting   ConnectionState = "connecting"
	ConnectionDisconnected ConnectionState = "disconnected"
	ConnectionError        ConnectionState = "error"
)

// Row is a loosely typed table row as returned by the table inspector.
type Row map[string]interface{}
