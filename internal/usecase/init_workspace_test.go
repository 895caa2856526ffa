package usecase

import (
	"testing"

	"github.com/aalvaropc/domscan/internal/domain"
)

type recordingInitializer struct {
	spec  domain.WorkspaceSpec
	force bool
}

func (r *recordingInitializer) Init(spec domain.WorkspaceSpec, force bool) ([]string, error) {
	r.spec, r.force = spec, force
	return []string{"domscan.yaml"}, nil
}

func TestInitWorkspace_Execute(t *testing.T) {
	rec := &recordingInitializer{}
	written, err := NewInitWorkspace(rec).Execute("/tmp/proj", true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.spec.Root != "/tmp/proj" || !rec.force {
		t.Fatalf("initializer got %+v force=%v", rec.spec, rec.force)
	}
	if len(written) != 1 {
		t.Fatalf("unexpected written %v", written)
	}
}

func TestInitWorkspace_EmptyRoot(t *testing.T) {
	_, err := NewInitWorkspace(&recordingInitializer{}).Execute("  ", false)
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
