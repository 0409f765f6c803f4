package overlay

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// overlayBaseFont is the core font registered for overlay text
const overlayBaseFont = "Helvetica"

// Stamper attaches overlay content streams to pages of a PDF document
// using pdfcpu. It holds exclusive write access to the document between
// Open and Write; page reads elsewhere must use a separate handle.
type Stamper struct {
	ctx     *model.Context
	fontRef *types.IndirectRef
}

// OpenStamper reads the document at path into a pdfcpu context
func OpenStamper(path string) (*Stamper, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &Stamper{ctx: ctx}, nil
}

// PageCount returns the document's page count
func (s *Stamper) PageCount() int {
	return s.ctx.PageCount
}

// AppendContent attaches a content stream to the 1-based page and makes
// sure the Helvetica resource the stream references is registered
func (s *Stamper) AppendContent(pageNr int, content []byte) error {
	if pageNr < 1 || pageNr > s.ctx.PageCount {
		return fmt.Errorf("page number %d out of range [1, %d]", pageNr, s.ctx.PageCount)
	}
	if len(content) == 0 {
		return nil
	}

	pageDict, _, inhAttrs, err := s.ctx.PageDict(pageNr, false)
	if err != nil {
		return fmt.Errorf("failed to get page dict for page %d: %w", pageNr, err)
	}
	if pageDict == nil {
		return fmt.Errorf("no page dict for page %d", pageNr)
	}

	sd, err := s.ctx.NewStreamDictForBuf(content)
	if err != nil {
		return fmt.Errorf("failed to create overlay stream: %w", err)
	}
	if err := sd.Encode(); err != nil {
		return fmt.Errorf("failed to encode overlay stream: %w", err)
	}
	streamRef, err := s.ctx.IndRefForNewObject(*sd)
	if err != nil {
		return fmt.Errorf("failed to register overlay stream: %w", err)
	}

	if err := s.appendToContents(pageDict, *streamRef); err != nil {
		return fmt.Errorf("failed to attach overlay to page %d: %w", pageNr, err)
	}

	if err := s.ensureFontResource(pageDict, inhAttrs); err != nil {
		return fmt.Errorf("failed to register overlay font on page %d: %w", pageNr, err)
	}

	return nil
}

// appendToContents adds the stream reference to the page's Contents entry,
// whatever shape it currently has
func (s *Stamper) appendToContents(pageDict types.Dict, streamRef types.IndirectRef) error {
	obj, found := pageDict.Find("Contents")
	if !found {
		pageDict.Insert("Contents", streamRef)
		return nil
	}

	switch contents := obj.(type) {
	case types.Array:
		pageDict.Update("Contents", append(contents, streamRef))
	case types.IndirectRef:
		resolved, err := s.ctx.Dereference(contents)
		if err != nil {
			return err
		}
		if arr, ok := resolved.(types.Array); ok {
			pageDict.Update("Contents", append(arr, streamRef))
		} else {
			pageDict.Update("Contents", types.Array{contents, streamRef})
		}
	default:
		return fmt.Errorf("unexpected Contents type %T", obj)
	}
	return nil
}

// ensureFontResource registers Helvetica under the overlay's resource name
// in the page's font resources
func (s *Stamper) ensureFontResource(pageDict types.Dict, inhAttrs *model.InheritedPageAttrs) error {
	if s.fontRef == nil {
		fontDict := types.Dict(map[string]types.Object{
			"Type":     types.Name("Font"),
			"Subtype":  types.Name("Type1"),
			"BaseFont": types.Name(overlayBaseFont),
			"Encoding": types.Name("WinAnsiEncoding"),
		})
		ref, err := s.ctx.IndRefForNewObject(fontDict)
		if err != nil {
			return err
		}
		s.fontRef = ref
	}

	var resources types.Dict
	if inhAttrs != nil && inhAttrs.Resources != nil {
		resources = inhAttrs.Resources
	} else {
		resources = types.Dict{}
	}

	var fonts types.Dict
	if obj, found := resources.Find("Font"); found {
		d, err := s.ctx.DereferenceDict(obj)
		if err != nil {
			return err
		}
		fonts = d
	}
	if fonts == nil {
		fonts = types.Dict{}
	}

	if _, found := fonts.Find(fontResourceName); !found {
		fonts.Insert(fontResourceName, *s.fontRef)
	}
	resources.Update("Font", fonts)
	pageDict.Update("Resources", resources)

	return nil
}

// Write persists the stamped document to path
func (s *Stamper) Write(path string) error {
	if err := api.WriteContextFile(s.ctx, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
