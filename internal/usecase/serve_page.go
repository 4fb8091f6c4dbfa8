package usecase

import (
	"context"
	"sync"

	"github.com/3-lines-studio/kaffe/internal/core"
)

type ServePageInput struct {
	Config      core.Config
	RequestPath string
}

type ServePageOutput struct {
	HTML  string
	SSR   bool
	Error error
}

// PageService rebuilds the page for every request in dev mode. Builds write
// to shared paths, so they run one at a time.
type PageService struct {
	builds *BuildService
	mu     sync.Mutex
}

func NewPageService(builds *BuildService) *PageService {
	return &PageService{builds: builds}
}

func (s *PageService) ServePage(ctx context.Context, input ServePageInput) ServePageOutput {
	s.mu.Lock()
	defer s.mu.Unlock()

	build := BuildInput{
		Config:   input.Config,
		Location: input.RequestPath,
		Quiet:    true,
	}

	var result BuildResult
	if s.builds.HasBundler() {
		result = s.builds.Build(ctx, build)
	} else {
		result = s.builds.CompileOnly(ctx, build)
	}

	if result.Error != nil {
		tracer().Errorf("dev build for %s failed: %v", input.RequestPath, result.Error)
	}
	return ServePageOutput{
		HTML:  result.Page,
		SSR:   result.SSR,
		Error: result.Error,
	}
}
