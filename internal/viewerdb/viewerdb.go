// Package viewerdb records container scans to a ClickHouse database.
package viewerdb

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/oklog/ulid/v2"
)

const databaseName = "hview" // official SQL name of the database

// NewID returns a fresh ULID for a database row.
func NewID() string {
	return ulid.Make().String()
}

// Connection wraps one ClickHouse connection plus the channels that feed
// it. A nil or unconnected Connection is safe to use: every recording call
// becomes a no-op.
type Connection struct {
	conn          clickhouse.Conn
	err           error
	activityEntry *ActivityMessage
	scanmsg       chan *ScanMessage
	datasetmsg    chan *DatasetMessage
	sync.WaitGroup
}

// IsConnected reports whether db holds a live database connection.
func (db *Connection) IsConnected() bool {
	return (db != nil) && (db.conn != nil) && (db.err == nil)
}

// PingServer checks that a ClickHouse server is reachable with the
// configured credentials.
func PingServer() error {
	db := createDBConnection()
	if !db.IsConnected() {
		return fmt.Errorf("database is not connected")
	}
	v, err := db.conn.ServerVersion()
	if err != nil {
		return err
	}
	fmt.Printf("ClickHouse server is alive. Version:\n%s\n", v)
	db.conn.Close()
	return nil
}

// StartDBConnection opens the database, logs the activity entry, and
// launches the goroutine that handles recording messages until abort
// closes.
func StartDBConnection(activity *ActivityMessage, abort <-chan struct{}) *Connection {
	conn := createDBConnection()
	conn.activityEntry = activity
	conn.logActivity()
	go conn.handleConnection(abort)
	return conn
}

// DummyConnection returns an unconnected Connection whose recording calls
// all no-op, for runs without a database.
func DummyConnection() *Connection {
	db := &Connection{}
	db.Add(1)
	return db
}

func createDBConnection() *Connection {
	db := &Connection{}
	dbUser := os.Getenv("HVIEW_DB_USER")
	dbPass := os.Getenv("HVIEW_DB_PASSWORD")
	auth := clickhouse.Auth{
		Database: databaseName,
		Username: dbUser,
		Password: dbPass,
	}
	client := clickhouse.ClientInfo{
		Products: []struct {
			Name    string
			Version string
		}{
			{Name: "hview", Version: "unknown"},
		},
	}
	opt := clickhouse.Options{
		Addr:       []string{"localhost:9000"},
		Auth:       auth,
		ClientInfo: client,
		TLS:        nil,
	}
	ctx := context.Background()
	conn, err := clickhouse.Open(&opt)
	if err != nil {
		db.err = err
		return db
	}
	db.conn = conn
	db.Add(1)

	if err = conn.Ping(ctx); err != nil {
		if exception, ok := err.(*clickhouse.Exception); ok {
			fmt.Printf("Exception [%d] %s \n%s\n", exception.Code, exception.Message, exception.StackTrace)
		}
		db.err = err
		return db
	}

	db.scanmsg = make(chan *ScanMessage)
	db.datasetmsg = make(chan *DatasetMessage)
	return db
}

// NewActivityMessage describes this viewer process for the activity table.
func NewActivityMessage(version string) *ActivityMessage {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "host not detected"
	}
	return &ActivityMessage{
		ID:        NewID(),
		Hostname:  hostname,
		Version:   version,
		GoVersion: runtime.Version(),
		Start:     time.Now(),
	}
}

func (db *Connection) logActivity() {
	if !db.IsConnected() {
		return
	}
	ctx := context.Background()
	const nowait = false
	ae := db.activityEntry
	formattedStart := ae.Start.Format("2006-01-02 15:04:05.000000")
	formattedEnd := ae.End.Format("2006-01-02 15:04:05.000000")
	if err := db.conn.AsyncInsert(ctx, `INSERT INTO hviewactivity VALUES (?, ?, ?, ?, ?, ?)`, nowait,
		ae.ID, ae.Hostname, ae.Version, ae.GoVersion, formattedStart, formattedEnd,
	); err != nil {
		fmt.Println("Error raised on AsyncInsert into hviewactivity ", err)
		db.err = err
	}
}

func (db *Connection) handleConnection(abort <-chan struct{}) {
	defer db.Done()
	for {
		select {
		case <-abort:
			db.Disconnect()
			return
		case smsg := <-db.scanmsg:
			db.handleScanMessage(smsg)
		case dmsg := <-db.datasetmsg:
			db.handleDatasetMessage(dmsg)
		}
	}
}

// Disconnect finalizes the activity entry.
func (db *Connection) Disconnect() {
	if db.IsConnected() {
		db.activityEntry.End = time.Now()
		db.logActivity()
	}
}

// RecordScan takes a ScanMessage and stores it in the DB (if it's open).
// This function will block until the select statement in `handleConnection`
// accepts the message.
// WARNING: Don't change this blocking behavior! It is how we ensure that a
// scan is entered in the DB before any corresponding calls to
// `RecordDataset` begin. Without the blocking, there would be a race
// between the 2 kinds of DB entries, and some dataset rows would be entered
// without valid scan IDs.
func (db *Connection) RecordScan(msg *ScanMessage) {
	if !db.IsConnected() || msg == nil {
		return
	}
	db.scanmsg <- msg
}

// RecordDataset stores one discovered-dataset row in the DB (if it's open).
func (db *Connection) RecordDataset(msg *DatasetMessage) {
	if !db.IsConnected() || msg == nil {
		return
	}
	go func() { db.datasetmsg <- msg }()
}

func (db *Connection) handleScanMessage(m *ScanMessage) {
	if !db.IsConnected() {
		return
	}
	ctx := context.Background()
	const nowait = false
	formattedStart := m.Start.Format("2006-01-02 15:04:05.000000")
	formattedEnd := m.End.Format("2006-01-02 15:04:05.000000")
	if err := db.conn.AsyncInsert(ctx, `INSERT INTO scans VALUES (?, ?, ?, ?, ?, ?, ?)`, nowait,
		m.ID, db.activityEntry.ID, m.Filename, m.Npaths, m.Ntemporal,
		formattedStart, formattedEnd,
	); err != nil {
		fmt.Println("Error raised on AsyncInsert into scans ", err)
		db.err = err
	}
}

func (db *Connection) handleDatasetMessage(m *DatasetMessage) {
	if !db.IsConnected() {
		return
	}
	ctx := context.Background()
	const nowait = false
	if err := db.conn.AsyncInsert(ctx, `INSERT INTO datasets VALUES (?, ?, ?, ?, ?, ?)`, nowait,
		m.ID, m.ScanID, m.Path, m.Shape, m.Dtype, m.Channels,
	); err != nil {
		fmt.Println("Error raised on AsyncInsert into datasets ", err)
		db.err = err
	}
}
