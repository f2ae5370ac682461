package orchestrator_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// startRecorder collects the order in which build actions begin.
type startRecorder struct {
	mu      sync.Mutex
	started []string
}

func (r *startRecorder) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, name)
}

func (r *startRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.started...)
}

func (r *startRecorder) index(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, started := range r.started {
		if started == name {
			return i
		}
	}
	return -1
}

func TestOrchestrator_ParallelRespectsDependencies(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockExec := mocks.NewMockExecutor(ctrl)

		// Diamond: top depends on left and right, both depend on base.
		session := domain.NewSession(t.TempDir())
		for _, target := range []domain.Target{
			commandTarget("top", "left", "right"),
			commandTarget("left", "base"),
			commandTarget("right", "base"),
			commandTarget("base"),
		} {
			_, err := session.Register(target)
			require.NoError(t, err)
		}

		rec := &startRecorder{}
		mockExec.EXPECT().
			Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Times(4).
			DoAndReturn(func(_ context.Context, target *domain.Target, _ []string, _ io.Writer) error {
				rec.record(target.Name)
				return nil
			})

		o := newOrchestrator(t, mockExec, nil)
		err := o.Run(context.Background(), session, orchestrator.Options{Jobs: 2})
		require.NoError(t, err)

		started := rec.all()
		require.Len(t, started, 4)
		assert.Equal(t, "base", started[0])
		assert.Equal(t, "top", started[3])
		assert.Less(t, rec.index("left"), rec.index("top"))
		assert.Less(t, rec.index("right"), rec.index("top"))

		for _, name := range []string{"base", "left", "right", "top"} {
			assert.Equal(t, orchestrator.StatusBuilt, o.Status(name))
		}
	})
}

func TestOrchestrator_ParallelHaltsAdmissionOnFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockExec := mocks.NewMockExecutor(ctrl)

		session := domain.NewSession(t.TempDir())
		for _, target := range []domain.Target{
			commandTarget("top", "left", "right"),
			commandTarget("left", "base"),
			commandTarget("right", "base"),
			commandTarget("base"),
		} {
			_, err := session.Register(target)
			require.NoError(t, err)
		}

		boom := zerr.With(zerr.Wrap(domain.ErrBuildFailure, "exit 1"), "target", "left")
		rec := &startRecorder{}
		mockExec.EXPECT().
			Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			AnyTimes().
			DoAndReturn(func(_ context.Context, target *domain.Target, _ []string, _ io.Writer) error {
				rec.record(target.Name)
				if target.Name == "left" {
					return boom
				}
				return nil
			})

		o := newOrchestrator(t, mockExec, nil)
		err := o.Run(context.Background(), session, orchestrator.Options{Jobs: 2})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBuildFailure))

		// In-flight siblings may finish, but once the failure lands no new
		// target is admitted: top never starts.
		assert.Equal(t, -1, rec.index("top"))
		assert.Equal(t, orchestrator.StatusFailed, o.Status("left"))
		assert.Equal(t, orchestrator.StatusPending, o.Status("top"))
	})
}

func TestOrchestrator_ParallelIgnoreFatalBuildsDependents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockExec := mocks.NewMockExecutor(ctrl)

		session := domain.NewSession(t.TempDir())
		_, err := session.Register(commandTarget("app", "lib"))
		require.NoError(t, err)
		_, err = session.Register(commandTarget("lib"))
		require.NoError(t, err)

		boom := zerr.With(zerr.Wrap(domain.ErrBuildFailure, "exit 1"), "target", "lib")
		mockExec.EXPECT().
			Execute(gomock.Any(), gomock.Any(), []string{"build", "lib"}, gomock.Any()).
			Return(boom)
		mockExec.EXPECT().
			Execute(gomock.Any(), gomock.Any(), []string{"build", "app"}, gomock.Any()).
			Return(nil)

		o := newOrchestrator(t, mockExec, nil)
		err = o.Run(context.Background(), session, orchestrator.Options{Jobs: 2, IgnoreFatal: true})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrBuildFailure))
		assert.Equal(t, orchestrator.StatusFailed, o.Status("lib"))
		assert.Equal(t, orchestrator.StatusBuilt, o.Status("app"))
	})
}
