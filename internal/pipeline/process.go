package pipeline

import (
	"fmt"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/catalog"
	"github.com/caliber-ui/quotation-app/internal/resolve"
	"github.com/caliber-ui/quotation-app/internal/storage"
)

// Processor runs an uploaded enquiry through extraction and attribute
// resolution and persists the result.
type Processor struct {
	DB       *storage.DB
	Resolver *resolve.Resolver
}

// Result summarizes one processed enquiry.
type Result struct {
	EnquiryID int
	Lines     int
	Resolved  int
	Skipped   int
}

// ProcessFile extracts lines from content, resolves each against the
// standards index and stores everything. A line that fails to resolve is
// skipped and counted, never aborting the batch.
func (p *Processor) ProcessFile(filename string, content []byte) (Result, error) {
	lines, err := Extract(filename, content)
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: %w", filename, err)
	}
	source := "text"
	if len(lines) > 0 {
		source = string(lines[0].Source)
	}

	enq, err := p.DB.UpsertEnquiry(source, filename, catalog.ContentHash(content))
	if err != nil {
		return Result{}, err
	}
	if err := p.DB.ClearEnquiryLines(enq.ID); err != nil {
		return Result{}, err
	}

	res := Result{EnquiryID: enq.ID, Lines: len(lines)}
	for _, line := range lines {
		lineID, err := p.DB.InsertEnquiryLine(enq.ID, line)
		if err != nil {
			res.Skipped++
			continue
		}
		row := p.Resolver.ResolveRow(line.Description)
		stored := false
		for slotNo, slot := range row.Slots {
			if err := p.DB.UpsertResolution(lineID, slotNo+1, slot.Category, slot.Attrs); err == nil {
				stored = true
			}
		}
		if stored {
			res.Resolved++
		}
	}

	status := "resolved"
	if res.Resolved == 0 {
		status = "empty"
	}
	if err := p.DB.UpdateEnquiryStatus(enq.ID, status); err != nil {
		return res, err
	}
	return res, nil
}

// ResolveLines runs resolution without persistence, for pasted text.
func (p *Processor) ResolveLines(lines []internal.EnquiryLine) []*resolve.RowResolution {
	out := make([]*resolve.RowResolution, 0, len(lines))
	for _, line := range lines {
		out = append(out, p.Resolver.ResolveRow(line.Description))
	}
	return out
}
