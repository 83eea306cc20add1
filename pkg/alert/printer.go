package alert

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Lines written to the alert stream. They match what the end-to-end
// harness greps for, so they must not change.
const (
	AlertMarker          = "!!! Receiving an alert."
	NonJSONMessage       = "Receiving a non-json post."
	MissingLengthMessage = "Receiving a json request, but not an alert."
	servingBanner        = "Webhook is serving at port"
)

// Printer writes the human-readable alert stream. Every method writes its
// whole block under one lock, so output from concurrent requests never
// interleaves.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintAlerts writes the marker line followed by the indented alert, for
// each alert in order. Rendering happens before any output so a bad alert
// never leaves a partial block behind.
func (p *Printer) PrintAlerts(alerts []Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	var b strings.Builder
	for i, a := range alerts {
		rendered, err := a.Indent()
		if err != nil {
			return fmt.Errorf("alert %d: %w", i, err)
		}
		b.WriteString(AlertMarker)
		b.WriteByte('\n')
		b.WriteString(rendered)
		b.WriteByte('\n')
	}
	return p.write(b.String())
}

// PrintNonJSON records a POST whose content type is not JSON.
func (p *Printer) PrintNonJSON() error {
	return p.write(NonJSONMessage + "\n")
}

// PrintMissingLength records a JSON POST that carried no Content-Length.
func (p *Printer) PrintMissingLength() error {
	return p.write(MissingLengthMessage + "\n")
}

// PrintServing writes the startup banner.
func (p *Printer) PrintServing(port string) error {
	return p.write(servingBanner + " " + port + "\n")
}

func (p *Printer) write(s string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, s); err != nil {
		return fmt.Errorf("write alert stream: %w", err)
	}
	return nil
}
