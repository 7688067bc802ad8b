package viewerdb

import "time"

// The composite types used for messages to the ClickHouse database.

// ActivityMessage is the information for the hviewactivity table: one row
// per viewer process.
type ActivityMessage struct {
	ID        string
	Hostname  string
	Version   string
	GoVersion string
	Start     time.Time
	End       time.Time
}

// ScanMessage is the information required to make an entry in the scans
// table: one row per container scan.
type ScanMessage struct {
	ID        string
	Filename  string
	Npaths    int
	Ntemporal int
	Start     time.Time
	End       time.Time
}

// DatasetMessage is one discovered temporal dataset within a scan.
type DatasetMessage struct {
	ID       string
	ScanID   string
	Path     string
	Shape    string
	Dtype    string
	Channels int
}
