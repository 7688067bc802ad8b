package hview

import (
	"fmt"
	"log"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/usnistgov/hview/internal/viewerdb"
)

// ViewerControl is the sub-server that handles opening containers and
// answering view requests from display clients. One viewer process serves
// one open container at a time; every answer is a fresh evaluation pass
// over that container.
type ViewerControl struct {
	active   Container
	filename string

	status        ServerStatus
	clientUpdates chan<- ClientUpdate
	scanlog       *viewerdb.Connection
}

// ServerStatus is the status that ViewerControl reports to clients.
type ServerStatus struct {
	FileOpen  bool
	Filename  string
	Npaths    int
	Ntemporal int
}

// OpenFile opens the named container file, scans it, and reports the scan
// over the status port. The special name "simulated" opens the built-in
// sample container.
func (s *ViewerControl) OpenFile(filename *string, reply *bool) error {
	if s.active != nil {
		return fmt.Errorf("a file is already open (call CloseFile first)")
	}
	log.Printf("Opening container file %s\n", *filename)
	c, err := openByName(*filename)
	if err != nil {
		return err
	}

	paths, err := WalkPaths(c)
	if err != nil {
		c.Close()
		return err
	}
	start := time.Now()
	temporal := FindTemporalDatasets(c)

	s.active = c
	s.filename = *filename
	s.status = ServerStatus{
		FileOpen:  true,
		Filename:  *filename,
		Npaths:    len(paths),
		Ntemporal: len(temporal),
	}
	s.broadcastUpdate()
	s.clientUpdates <- ClientUpdate{"SCAN", temporal}
	s.recordScan(temporal, len(paths), start)

	log.Printf("Scanned %d paths, %d temporal datasets\n", len(paths), len(temporal))
	*reply = true
	return nil
}

// CloseFile releases the open container, if any.
func (s *ViewerControl) CloseFile(dummy *string, reply *bool) error {
	if s.active == nil {
		return fmt.Errorf("no file is open")
	}
	log.Printf("Closing container file %s\n", s.filename)
	err := s.active.Close()
	s.active = nil
	s.filename = ""
	s.status = ServerStatus{}
	s.broadcastUpdate()
	*reply = (err == nil)
	return err
}

// ListPaths reports every node path in the open container, in walk order.
func (s *ViewerControl) ListPaths(dummy *string, reply *[]string) error {
	if s.active == nil {
		return fmt.Errorf("no file is open")
	}
	paths, err := WalkPaths(s.active)
	if err != nil {
		return err
	}
	*reply = paths
	return nil
}

// FindTemporal reports the discovered temporal datasets.
func (s *ViewerControl) FindTemporal(dummy *string, reply *[]TemporalDataset) error {
	if s.active == nil {
		return fmt.Errorf("no file is open")
	}
	*reply = FindTemporalDatasets(s.active)
	return nil
}

// ChannelNamesArgs selects a dataset and a naming context.
type ChannelNamesArgs struct {
	Path     string
	Temporal bool
}

// ChannelNames reports the derived channel names for one dataset, for
// populating selection widgets.
func (s *ViewerControl) ChannelNames(args *ChannelNamesArgs, reply *[]string) error {
	if s.active == nil {
		return fmt.Errorf("no file is open")
	}
	shape, _, err := s.active.Shape(args.Path)
	if err != nil {
		return err
	}
	count := 1
	template := BrowseNameTemplate
	if len(shape) >= 2 {
		count = shape[1]
	}
	if args.Temporal {
		count--
		template = TemporalNameTemplate
	}
	*reply = DeriveNames(nodeAttributes(s.active, args.Path), count, template)
	return nil
}

// DatasetDescription is the metadata view of one dataset.
type DatasetDescription struct {
	Path       string
	Shape      []int
	Dtype      string
	Attributes map[string]string
}

// Describe reports shape, dtype, and decoded attributes for one dataset.
func (s *ViewerControl) Describe(path *string, reply *DatasetDescription) error {
	if s.active == nil {
		return fmt.Errorf("no file is open")
	}
	shape, kind, err := s.active.Shape(*path)
	if err != nil {
		return err
	}
	attrs := nodeAttributes(s.active, *path)
	display := make(map[string]string, len(attrs))
	for _, name := range attrs.Names() {
		display[name] = attrs[name].String()
	}
	*reply = DatasetDescription{Path: *path, Shape: shape, Dtype: kind.String(), Attributes: display}
	return nil
}

// ExtractArgs carries one view request over RPC.
type ExtractArgs struct {
	Path       string
	Channels   []string
	MaxSamples int
	Temporal   bool
}

// ExtractReply is the summary side of one evaluation pass. The raw matrix
// stays on the server; clients fetch it through the export calls.
type ExtractReply struct {
	Stats          StatisticsTable
	AllNames       []string
	SelectedNames  []string
	Rows           int
	SamplesDropped int
}

// ExtractStats runs one evaluation pass and reports the statistics table.
func (s *ViewerControl) ExtractStats(args *ExtractArgs, reply *ExtractReply) error {
	result, err := s.evaluate(args)
	if err != nil {
		return err
	}
	*reply = ExtractReply{
		Stats:          result.Stats,
		AllNames:       result.AllNames,
		SelectedNames:  result.Matrix.Names,
		Rows:           result.Matrix.Rows(),
		SamplesDropped: result.SamplesDropped,
	}
	return nil
}

// ExportArgs requests a file export of one evaluation pass.
type ExportArgs struct {
	ExtractArgs
	Directory string
	What      string // "data", "stats", or "attributes"
}

// ExportCSV writes one CSV export into the requested directory and reports
// the generated filename.
func (s *ViewerControl) ExportCSV(args *ExportArgs, reply *string) error {
	result, err := s.evaluate(&args.ExtractArgs)
	if err != nil {
		return err
	}
	var prefix string
	var write func(*os.File) error
	switch args.What {
	case "data":
		prefix = "series"
		write = func(f *os.File) error { return WriteDataCSV(f, result.Matrix) }
	case "stats":
		prefix = "stats"
		write = func(f *os.File) error { return WriteStatsCSV(f, result.Stats) }
	case "attributes":
		prefix = "attrs"
		write = func(f *os.File) error { return WriteAttributesCSV(f, result.Attributes) }
	default:
		return fmt.Errorf("unknown export kind %q", args.What)
	}

	name := filepath.Join(args.Directory, ExportFilename(prefix, "csv"))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	log.Printf("Exported %s to %s\n", args.What, name)
	*reply = name
	return nil
}

// ExportNPY writes the extracted matrix as a .npy file and reports the
// generated filename.
func (s *ViewerControl) ExportNPY(args *ExportArgs, reply *string) error {
	result, err := s.evaluate(&args.ExtractArgs)
	if err != nil {
		return err
	}
	name := filepath.Join(args.Directory, ExportFilename("matrix", "npy"))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteMatrixNPY(f, result.Matrix); err != nil {
		return err
	}
	log.Printf("Exported matrix to %s\n", name)
	*reply = name
	return nil
}

// SendAllStatus causes a broadcast to clients containing all broadcastable
// status info.
func (s *ViewerControl) SendAllStatus(dummy *string, reply *bool) error {
	s.broadcastUpdate()
	s.clientUpdates <- ClientUpdate{"SENDALL", 0}
	*reply = true
	return nil
}

func (s *ViewerControl) evaluate(args *ExtractArgs) (*ViewResult, error) {
	if s.active == nil {
		return nil, fmt.Errorf("no file is open")
	}
	req := ViewRequest{Path: args.Path, Channels: args.Channels, MaxSamples: args.MaxSamples}
	if args.Temporal {
		return TemporalView(s.active, req)
	}
	return BrowseView(s.active, req)
}

func (s *ViewerControl) broadcastUpdate() {
	s.clientUpdates <- ClientUpdate{"STATUS", s.status}
}

func (s *ViewerControl) recordScan(temporal []TemporalDataset, npaths int, start time.Time) {
	if !s.scanlog.IsConnected() {
		return
	}
	msg := &viewerdb.ScanMessage{
		ID:        viewerdb.NewID(),
		Filename:  s.filename,
		Npaths:    npaths,
		Ntemporal: len(temporal),
		Start:     start,
		End:       time.Now(),
	}
	s.scanlog.RecordScan(msg)
	for _, td := range temporal {
		s.scanlog.RecordDataset(&viewerdb.DatasetMessage{
			ID:       viewerdb.NewID(),
			ScanID:   msg.ID,
			Path:     td.Path,
			Shape:    fmt.Sprint(td.Shape),
			Dtype:    td.Dtype,
			Channels: td.Channels,
		})
	}
}

// openByName opens a container file by extension. The NPY opener is built
// in; "simulated" opens the synthetic sample container.
func openByName(filename string) (Container, error) {
	if strings.EqualFold(filename, "simulated") {
		return NewSimulatedContainer(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".npy":
		return OpenNPY(f)
	default:
		return nil, fmt.Errorf("no opener registered for %q files", filepath.Ext(filename))
	}
}

// RunRPCServer sets up and runs a permanent JSON-RPC server.
func RunRPCServer(messageChan chan<- ClientUpdate, portrpc int) {

	// Set up the object that handles remote calls.
	viewerControl := new(ViewerControl)
	viewerControl.clientUpdates = messageChan

	log.Printf("hview is using config file %s\n", viper.ConfigFileUsed())
	if viper.GetBool("clickhouse") {
		abortDB := make(chan struct{})
		defer close(abortDB)
		activity := viewerdb.NewActivityMessage(Build.Version)
		viewerControl.scanlog = viewerdb.StartDBConnection(activity, abortDB)
	}

	// Reopen the container from the last run, if the config names one.
	if lastfile := viper.GetString("openfile"); lastfile != "" {
		var okay bool
		if err := viewerControl.OpenFile(&lastfile, &okay); err != nil {
			ProblemLogger.Printf("could not reopen %s: %v", lastfile, err)
		}
	}

	go func() {
		ticker := time.Tick(2 * time.Second)
		for range ticker {
			viewerControl.broadcastUpdate()
		}
	}()

	// Now launch the connection handler and accept connections.
	server := rpc.NewServer()
	server.Register(viewerControl)
	server.HandleHTTP(rpc.DefaultRPCPath, rpc.DefaultDebugPath)
	port := fmt.Sprintf(":%d", portrpc)
	listener, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatal("listen error:", err)
	}
	for {
		if conn, err := listener.Accept(); err != nil {
			log.Fatal("accept error: " + err.Error())
		} else {
			log.Printf("new connection established\n")
			go server.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}
}
