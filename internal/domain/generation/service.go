package generation

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"brandkit-server-go/internal/domain/eventbus"
	"brandkit-server-go/internal/platform/errors"
	"brandkit-server-go/internal/platform/logging"
)

// ConceptRequest describes one batch of logo-concept generations.
type ConceptRequest struct {
	KitID       uint
	UserID      uint
	KitName     string
	Industry    string
	Description string
	Count       int
}

// Concept is one generated logo variation, indexed by request order.
type Concept struct {
	Index  int
	Prompt string
	Data   string // data URI, ready for inline display
}

// ConceptFailure records a variation that could not be generated.
type ConceptFailure struct {
	Index  int
	Reason string
}

// ConceptResult carries the surviving concepts and any per-slot failures.
type ConceptResult struct {
	Concepts []Concept
	Failed   []ConceptFailure
}

// Service coordinates concurrent generation against a Provider.
type Service struct {
	provider      Provider
	logger        *logging.Logger
	maxConcurrent int
}

func NewService(provider Provider, logger *logging.Logger, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Service{provider: provider, logger: logger, maxConcurrent: maxConcurrent}
}

// GenerateConcepts fans out Count image generations and collects them in
// request order. Individual failures are recorded, not fatal; the call only
// errors when every variation fails.
func (s *Service) GenerateConcepts(ctx context.Context, req ConceptRequest) (ConceptResult, error) {
	if req.Count <= 0 {
		req.Count = 3
	}

	eventbus.Publish(eventbus.EventGenerationStarted, eventbus.GenerationEventData{
		KitID:     req.KitID,
		UserID:    req.UserID,
		Kind:      "logo-concepts",
		Requested: req.Count,
	})

	var mu sync.Mutex
	concepts := make([]*Concept, req.Count)
	var failed []ConceptFailure

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i := 0; i < req.Count; i++ {
		index := i
		g.Go(func() error {
			prompt := promptForConcept(req.KitName, req.Industry, req.Description, index)
			result, err := s.provider.GenerateImage(gctx, ImageRequest{Prompt: prompt})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.WarnTag("GENERATION", "concept %d for kit %d failed: %v", index+1, req.KitID, err)
				failed = append(failed, ConceptFailure{Index: index, Reason: err.Error()})
				return nil
			}
			concepts[index] = &Concept{
				Index:  index,
				Prompt: prompt,
				Data:   fmt.Sprintf("data:image/%s;base64,%s", result.Format, result.Base64),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		eventbus.Publish(eventbus.EventGenerationFailed, eventbus.GenerationEventData{
			KitID: req.KitID, UserID: req.UserID, Kind: "logo-concepts", Error: err.Error(),
		})
		return ConceptResult{}, errors.Wrap(errors.KindGeneration, "service.concepts", "concept generation aborted", err)
	}

	out := ConceptResult{Failed: failed}
	for _, c := range concepts {
		if c != nil {
			out.Concepts = append(out.Concepts, *c)
		}
	}

	if len(out.Concepts) == 0 {
		eventbus.Publish(eventbus.EventGenerationFailed, eventbus.GenerationEventData{
			KitID: req.KitID, UserID: req.UserID, Kind: "logo-concepts",
			Requested: req.Count, Error: "all concepts failed",
		})
		return out, errors.New(errors.KindGeneration, "service.concepts", "all concept generations failed")
	}

	eventbus.Publish(eventbus.EventGenerationCompleted, eventbus.GenerationEventData{
		KitID:     req.KitID,
		UserID:    req.UserID,
		Kind:      "logo-concepts",
		Requested: req.Count,
		Succeeded: len(out.Concepts),
	})
	return out, nil
}

// SuggestTagline produces a short tagline for the kit via the text model.
func (s *Service) SuggestTagline(ctx context.Context, kitName, industry, description string) (string, error) {
	prompt := fmt.Sprintf("Write one short tagline (at most 8 words) for the brand %q.", kitName)
	if industry != "" {
		prompt += fmt.Sprintf(" Industry: %s.", industry)
	}
	if description != "" {
		prompt += " About: " + description
	}

	text, err := s.provider.GenerateText(ctx, TextRequest{
		System: "You are a concise brand copywriter. Reply with the tagline only, no quotes.",
		Prompt: prompt,
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
