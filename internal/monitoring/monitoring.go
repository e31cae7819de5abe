package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerRepository  = "repositories"
	LayerTransformer = "transformer"
	LayerService     = "services"
	LayerDelivery    = "deliveries"
	LayerUnknown     = "unknown"
)

type Monitor struct {
	ctx         context.Context
	segmentName string

	// layer is where the monitored call lives
	layer string

	start   time.Time
	segment *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

// New starts a monitor for the calling function. Without WithSegmentName the
// segment name and layer are derived from the caller.
func New(ctx context.Context, opts ...InitOption) *Monitor {
	fOpts := &initOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	if fOpts.segmentName == "" {
		// must stay directly in New: Caller(1) is the monitored function
		pc, file, _, ok := runtime.Caller(1)
		if !ok {
			pc = 0
		}

		fOpts.segmentName = "unknown"
		if fn := runtime.FuncForPC(pc); fn != nil {
			fOpts.segmentName = getSegmentName(fn.Name())
		}

		if fOpts.layer == "" {
			fOpts.layer = layerFromFile(file)
		}
	}

	if fOpts.layer == "" {
		fOpts.layer = LayerUnknown
	}

	var segment *newrelic.Segment
	if txn := newrelic.FromContext(ctx); txn != nil {
		segment = txn.StartSegment(fOpts.segmentName)
		segment.AddAttribute("layer", fOpts.layer)
	}

	return &Monitor{
		ctx:         ctx,
		layer:       fOpts.layer,
		start:       time.Now(),
		segmentName: fOpts.segmentName,
		segment:     segment,
	}
}

func layerFromFile(file string) string {
	switch {
	case strings.Contains(file, LayerRepository):
		return LayerRepository
	case strings.Contains(file, "/"+LayerTransformer+"/"):
		return LayerTransformer
	case strings.Contains(file, LayerService):
		return LayerService
	case strings.Contains(file, LayerDelivery):
		return LayerDelivery
	default:
		return LayerUnknown
	}
}

// NewMiddlewareRoundTripper reports outgoing requests as external segments of
// the transaction carried by the request context.
func NewMiddlewareRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return newrelic.NewRoundTripper(next)
}
