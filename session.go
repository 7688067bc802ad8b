package hview

// One user interaction is one full evaluation pass: walk, classify, name,
// extract, limit, summarize. No state survives between passes except the
// open container handle itself, and nothing here touches ambient
// configuration: every parameter arrives in the request struct.

import (
	"fmt"
	"io"
)

// ViewRequest carries the per-interaction parameters chosen by the user.
type ViewRequest struct {
	Path       string
	Channels   []string // empty means use the default selection policy
	MaxSamples int      // 0 or less means unlimited
}

// ViewResult is the product of one evaluation pass, handed to the
// rendering and export layers.
type ViewResult struct {
	Matrix         *ExtractedMatrix
	Stats          StatisticsTable
	AllNames       []string // full channel list, for selection widgets
	Attributes     AttrMap
	SamplesDropped int
}

// WithContainer opens a container from r, runs fn against it, and closes
// the handle on every exit path, including a panic inside fn. Close errors
// are reported only when fn itself succeeded.
func WithContainer(r io.Reader, open OpenFunc, fn func(Container) error) (err error) {
	c, err := open(r)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

// TemporalView evaluates one temporal request against an open container:
// the dataset at req.Path is read, limited, split into time and channels,
// and summarized. The dataset must have rank 2 with at least 2 columns.
func TemporalView(c Container, req ViewRequest) (*ViewResult, error) {
	shape, _, err := c.Shape(req.Path)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 || shape[1] < 2 {
		return nil, fmt.Errorf("dataset %q is not a temporal dataset (shape %v)", req.Path, shape)
	}

	attrs := nodeAttributes(c, req.Path)
	allNames := DeriveNames(attrs, shape[1]-1, TemporalNameTemplate)

	raw, err := c.Read(req.Path)
	if err != nil {
		return nil, err
	}
	if !IsPlottable(raw) {
		return nil, &NonPlottableError{Path: req.Path}
	}
	raw, dropped := LimitSamples(raw, req.MaxSamples)

	matrix, err := Extract(raw, allNames, req.Channels, true)
	if err != nil {
		return nil, err
	}
	return &ViewResult{
		Matrix:         matrix,
		Stats:          Summarize(matrix),
		AllNames:       allNames,
		Attributes:     attrs,
		SamplesDropped: dropped,
	}, nil
}

// BrowseView evaluates one general request against an open container. Any
// numeric dataset of rank at most 2 qualifies; there is no time column. A
// dataset that fails the plottability check yields a *NonPlottableError so
// the caller can fall back to a raw display.
func BrowseView(c Container, req ViewRequest) (*ViewResult, error) {
	raw, err := c.Read(req.Path)
	if err != nil {
		return nil, err
	}
	if !IsPlottable(raw) {
		return nil, &NonPlottableError{Path: req.Path}
	}

	attrs := nodeAttributes(c, req.Path)
	allNames := DeriveNames(attrs, raw.Cols(), BrowseNameTemplate)

	raw, dropped := LimitSamples(raw, req.MaxSamples)

	matrix, err := Extract(raw, allNames, req.Channels, false)
	if err != nil {
		return nil, err
	}
	return &ViewResult{
		Matrix:         matrix,
		Stats:          Summarize(matrix),
		AllNames:       allNames,
		Attributes:     attrs,
		SamplesDropped: dropped,
	}, nil
}

// nodeAttributes tolerates attribute-read failures: metadata problems must
// not block viewing the data itself.
func nodeAttributes(c Container, path string) AttrMap {
	attrs, err := c.Attributes(path)
	if err != nil || attrs == nil {
		return AttrMap{}
	}
	return attrs
}
