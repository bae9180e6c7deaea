package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/klauspost/compress/zip"

	domainimage "brandkit-server-go/internal/domain/image"
	"brandkit-server-go/internal/domain/imageref"
	"brandkit-server-go/internal/platform/errors"
	"brandkit-server-go/internal/platform/logging"
)

// maxRemoteLogoBytes caps the uploaded-logo download during packaging.
const maxRemoteLogoBytes = 20 << 20

// AssemblerOptions configures an Assembler.
type AssemblerOptions struct {
	Client       *http.Client
	Logger       *logging.Logger
	FetchTimeout time.Duration
}

// Assembler packages a brand kit into a ZIP archive. Per-asset failures are
// recorded and skipped; only a failure of the archive writer itself aborts.
type Assembler struct {
	client       *http.Client
	logger       *logging.Logger
	fetchTimeout time.Duration
}

// NewAssembler constructs an Assembler.
func NewAssembler(opts AssemblerOptions) *Assembler {
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.DefaultLogger
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	return &Assembler{
		client:       opts.Client,
		logger:       opts.Logger,
		fetchTimeout: opts.FetchTimeout,
	}
}

// Assemble produces the archive for a brand kit under the given inclusion
// policy. The style sheets, readme, and guidelines are always emitted; the
// logos and gallery folders are populated per policy and asset availability.
func (a *Assembler) Assemble(ctx context.Context, m Model, opts Options) (*Result, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	result := &Result{}

	textEntries := []struct {
		name    string
		content string
	}{
		{"README.md", ReadmeMarkdown(m, opts)},
		{"styles/colors.css", ColorsCSS(m.Palette)},
		{"styles/typography.css", TypographyCSS(m.Typography)},
		{"guidelines.md", GuidelinesMarkdown(m)},
	}
	for _, entry := range textEntries {
		if err := writeEntry(zw, entry.name, []byte(entry.content)); err != nil {
			return nil, errors.Wrap(errors.KindExport, "assemble", "write "+entry.name, err)
		}
	}

	if opts.IncludeLogos {
		if err := a.writeLogos(ctx, zw, m, result); err != nil {
			return nil, err
		}
	}

	if opts.IncludeGallery {
		if err := a.writeGallery(zw, m, result); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(errors.KindExport, "assemble", "finalise archive", err)
	}

	result.Archive = buf.Bytes()
	return result, nil
}

// writeLogos picks the main logo by priority (selected, uploaded, first
// available) and then emits every other inline logo concept in stored order.
func (a *Assembler) writeLogos(ctx context.Context, zw *zip.Writer, m Model, result *Result) error {
	mainID, payload := a.selectMainLogo(ctx, m, result)
	if payload != nil {
		name := fmt.Sprintf("logos/main-logo.%s", domainimage.Extension(payload.Format))
		if err := writeEntry(zw, name, payload.Bytes); err != nil {
			return errors.Wrap(errors.KindExport, "assemble", "write main logo", err)
		}
	}

	concept := 0
	for _, asset := range m.Assets {
		if asset.Kind != AssetLogo || asset.ID == mainID || asset.Data == "" {
			continue
		}
		decoded, err := domainimage.DecodeInline(asset.Data)
		if err != nil {
			a.skip(result, asset.ID, fmt.Sprintf("decode logo concept: %v", err))
			continue
		}
		concept++
		name := fmt.Sprintf("logos/concept-%d.%s", concept, domainimage.Extension(decoded.Format))
		if err := writeEntry(zw, name, decoded.Bytes); err != nil {
			return errors.Wrap(errors.KindExport, "assemble", "write logo concept", err)
		}
	}

	return nil
}

// selectMainLogo evaluates the priority chain strictly in order: the selected
// asset's inline data, then the uploaded logo reference, then the first
// generated logo with inline data. Candidates that fail to decode or fetch
// are recorded and the chain moves on.
func (a *Assembler) selectMainLogo(ctx context.Context, m Model, result *Result) (string, *domainimage.Payload) {
	if m.SelectedLogoID != "" {
		for _, asset := range m.Assets {
			if asset.ID != m.SelectedLogoID || asset.Data == "" {
				continue
			}
			decoded, err := domainimage.DecodeInline(asset.Data)
			if err != nil {
				a.skip(result, asset.ID, fmt.Sprintf("decode selected logo: %v", err))
				break
			}
			return asset.ID, &decoded
		}
	}

	if m.UploadedLogoRef != "" {
		payload, err := a.loadUploadedLogo(ctx, m.UploadedLogoRef)
		if err != nil {
			a.skip(result, "uploaded-logo", err.Error())
		} else if payload != nil {
			return "", payload
		}
	}

	for _, asset := range m.Assets {
		if asset.Kind != AssetLogo || asset.Data == "" {
			continue
		}
		decoded, err := domainimage.DecodeInline(asset.Data)
		if err != nil {
			a.skip(result, asset.ID, fmt.Sprintf("decode logo: %v", err))
			continue
		}
		return asset.ID, &decoded
	}

	// No candidate yielded data; the archive simply has no main-logo file.
	return "", nil
}

func (a *Assembler) loadUploadedLogo(ctx context.Context, ref string) (*domainimage.Payload, error) {
	classified := imageref.Classify(ref)
	switch classified.Kind {
	case imageref.KindInline:
		decoded, err := domainimage.DecodeInline(classified.Value)
		if err != nil {
			return nil, fmt.Errorf("decode uploaded logo: %w", err)
		}
		return &decoded, nil

	case imageref.KindRemoteURL:
		fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, classified.Value, nil)
		if err != nil {
			return nil, fmt.Errorf("create logo request: %w", err)
		}
		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch uploaded logo: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch uploaded logo: unexpected status %s", resp.Status)
		}
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteLogoBytes))
		if err != nil {
			return nil, fmt.Errorf("read uploaded logo: %w", err)
		}
		if len(raw) == 0 {
			return nil, fmt.Errorf("uploaded logo is empty")
		}
		return &domainimage.Payload{Bytes: raw, Format: domainimage.SniffFormat(raw)}, nil

	default:
		return nil, nil
	}
}

// writeGallery emits one sequentially numbered file per image asset with
// inline data. Failed decodes are skipped and the numbering stays dense.
func (a *Assembler) writeGallery(zw *zip.Writer, m Model, result *Result) error {
	index := 0
	for _, asset := range m.Assets {
		if asset.Kind != AssetImage || asset.Data == "" {
			continue
		}
		decoded, err := domainimage.DecodeInline(asset.Data)
		if err != nil {
			a.skip(result, asset.ID, fmt.Sprintf("decode gallery image: %v", err))
			continue
		}
		index++
		name := fmt.Sprintf("gallery/image-%d.%s", index, domainimage.Extension(decoded.Format))
		if err := writeEntry(zw, name, decoded.Bytes); err != nil {
			return errors.Wrap(errors.KindExport, "assemble", "write gallery image", err)
		}
	}
	return nil
}

func (a *Assembler) skip(result *Result, assetID, reason string) {
	a.logger.WarnTag("EXPORT", "skipping asset %s: %s", assetID, reason)
	result.Skipped = append(result.Skipped, SkipRecord{AssetID: assetID, Reason: reason})
}

func writeEntry(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}
