package maboss_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aretw0/maboss"
	"github.com/aretw0/maboss/internal/testutils"
	"github.com/aretw0/maboss/pkg/adapters/file"
	"github.com/aretw0/maboss/pkg/adapters/memory"
	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/ports"
	"github.com/aretw0/maboss/pkg/server"
	"github.com/aretw0/maboss/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tcpEndpoint(t *testing.T, h server.HandlerFunc) transport.Endpoint {
	return transport.TCPEndpoint("127.0.0.1", testutils.StartTCPServer(t, h))
}

func networkRequest() *domain.Request {
	req := domain.NewRequest()
	req.SetNetwork("A -> B;")
	return req
}

func TestClient_SubmitAndPersist_ProbTrajOnly(t *testing.T) {
	ep := tcpEndpoint(t, func(ctx context.Context, req *domain.Request) *domain.Reply {
		var arts domain.Artifacts
		arts[domain.ArtifactProbTraj] = "t,A,B\n0,1,0\n"
		reply, _ := domain.NewReply(arts, 0, "")
		return reply
	})

	client := maboss.New(maboss.WithEndpoint(ep))
	reply, err := client.Submit(context.Background(), networkRequest())
	require.NoError(t, err)

	dir := t.TempDir()
	prefix := filepath.Join(dir, "run")
	written, err := maboss.Persist(context.Background(), reply, file.New(prefix))
	require.NoError(t, err)
	assert.Equal(t, []string{"_probtraj.csv"}, written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run_probtraj.csv", entries[0].Name())

	data, err := os.ReadFile(prefix + "_probtraj.csv")
	require.NoError(t, err)
	assert.Equal(t, "t,A,B\n0,1,0\n", string(data))
}

func TestClient_ApplicationErrorWritesNothing(t *testing.T) {
	ep := tcpEndpoint(t, func(ctx context.Context, req *domain.Request) *domain.Reply {
		return domain.NewErrorReply(1, "unknown node C")
	})

	reply, err := maboss.New(maboss.WithEndpoint(ep)).Submit(context.Background(), networkRequest())
	require.NoError(t, err, "a failed job is still a successful exchange")

	store := memory.NewStore()
	written, err := maboss.Persist(context.Background(), reply, store)
	assert.Empty(t, written)
	assert.Empty(t, store.Names())

	var appErr *domain.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 1, appErr.Status)
	assert.Equal(t, "unknown node C", appErr.Message)
	assert.Equal(t, domain.KindApplication, domain.KindOf(err))
}

func TestClient_SubmitWithoutEndpoint(t *testing.T) {
	_, err := maboss.New().Submit(context.Background(), networkRequest())
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestClient_SessionPerSubmit(t *testing.T) {
	var calls atomic.Int32
	ep := tcpEndpoint(t, func(ctx context.Context, req *domain.Request) *domain.Reply {
		calls.Add(1)
		reply, _ := domain.NewReply(domain.Artifacts{}, 0, "")
		return reply
	})

	client := maboss.New(maboss.WithEndpoint(ep))
	for i := 0; i < 3; i++ {
		_, err := client.Submit(context.Background(), networkRequest())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}

type observerFunc func(ports.ExchangeReport)

func (f observerFunc) ObserveExchange(ctx context.Context, r ports.ExchangeReport) { f(r) }

func TestClient_ObserverSeesConnectionFailure(t *testing.T) {
	ep, err := transport.ParseEndpoint("127.0.0.1", testutils.ClosedPort(t))
	require.NoError(t, err)

	var reports []ports.ExchangeReport
	client := maboss.New(
		maboss.WithEndpoint(ep),
		maboss.WithObserver(observerFunc(func(r ports.ExchangeReport) { reports = append(reports, r) })),
	)

	_, err = client.Submit(context.Background(), networkRequest())
	assert.ErrorIs(t, err, domain.ErrConnection)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.KindConnection, reports[0].Outcome)
}

type failingStore struct{}

func (failingStore) Put(ctx context.Context, name, data string) error {
	return errors.New("disk full")
}

func (failingStore) Get(ctx context.Context, name string) (string, error) {
	return "", domain.ErrArtifactNotFound
}

func TestPersist_StoreFailure(t *testing.T) {
	var arts domain.Artifacts
	arts[domain.ArtifactTraj] = "x"
	reply, err := domain.NewReply(arts, 0, "")
	require.NoError(t, err)

	written, err := maboss.Persist(context.Background(), reply, failingStore{})
	assert.Empty(t, written)
	assert.ErrorContains(t, err, "traj artifact: disk full")
}

func TestPersist_AllArtifactsInWireOrder(t *testing.T) {
	var arts domain.Artifacts
	for _, k := range domain.ArtifactKinds {
		arts[k] = k.String()
	}
	reply, err := domain.NewReply(arts, 0, "")
	require.NoError(t, err)

	store := memory.NewStore()
	written, err := maboss.Persist(context.Background(), reply, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"_traj.txt", "_run.txt", "_probtraj.csv", "_statdist.csv", "_fp.csv"}, written)

	got, err := store.Get(context.Background(), "_statdist.csv")
	require.NoError(t, err)
	assert.Equal(t, "statdist", got)
}
