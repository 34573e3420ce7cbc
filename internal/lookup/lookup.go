// Package lookup resolves bare bibliographic identifiers (DOI, PMID,
// arXiv) into structured reference records.
//
// Lookup is never allowed to lose a citation: when metadata cannot be
// fetched, Resolve returns a minimal stub record instead of failing.
package lookup

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/ebayer/folio/internal/reference"
)

var (
	doiRe   = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)
	pmidRe  = regexp.MustCompile(`^\d{1,9}$`)
	arxivRe = regexp.MustCompile(`^(?i:arxiv:)?\d{4}\.\d{4,5}(?:v\d+)?$`)
)

// Kind classifies an identifier string.
type Kind string

const (
	KindDOI     Kind = "doi"
	KindPMID    Kind = "pmid"
	KindArXiv   Kind = "arxiv"
	KindUnknown Kind = "unknown"
)

// Classify determines what kind of identifier a string is.
func Classify(id string) Kind {
	id = strings.TrimSpace(id)
	switch {
	case doiRe.MatchString(id):
		return KindDOI
	case arxivRe.MatchString(id):
		return KindArXiv
	case pmidRe.MatchString(id):
		return KindPMID
	default:
		return KindUnknown
	}
}

// Resolver resolves identifiers, delegating DOI lookups to Crossref.
type Resolver struct {
	crossref *CrossrefClient
	now      func() time.Time
}

// NewResolver creates a resolver with the given Crossref client. A nil
// client means every DOI resolves to a stub.
func NewResolver(crossref *CrossrefClient) *Resolver {
	return &Resolver{crossref: crossref, now: time.Now}
}

// Resolve turns an identifier into a reference record. PMID and arXiv
// identifiers resolve to stub records; DOIs go through Crossref with a
// stub fallback on any failure.
func (r *Resolver) Resolve(ctx context.Context, id string) reference.Reference {
	id = strings.TrimSpace(id)
	switch Classify(id) {
	case KindDOI:
		if r.crossref != nil {
			if ref, err := r.crossref.Work(ctx, id); err == nil {
				return ref
			}
		}
		return r.stub(id, "Crossref")
	case KindPMID:
		return r.stubTitled("PMID:"+id, id, "PubMed")
	case KindArXiv:
		clean := strings.TrimPrefix(strings.ToLower(id), "arxiv:")
		return r.stubTitled("arXiv:"+clean, "arXiv:"+clean, "arXiv")
	default:
		return r.stub(id, "")
	}
}

// stub builds the minimal record used when lookup cannot complete: the
// identifier stands in for the title, the author is Unknown, and the year
// is the current year.
func (r *Resolver) stub(id, container string) reference.Reference {
	return r.stubTitled(id, id, container)
}

func (r *Resolver) stubTitled(title, id, container string) reference.Reference {
	ref := reference.Reference{
		Type:      "article-journal",
		Title:     title,
		Authors:   []reference.Author{{Family: "Unknown"}},
		Year:      r.now().Year(),
		Container: container,
	}
	if Classify(id) == KindDOI {
		ref.DOI = id
	} else {
		ref.ID = id
	}
	return ref
}
