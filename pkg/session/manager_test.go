package session

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/clara/pkg/config"
	"github.com/go-go-golems/clara/pkg/places"
	"github.com/go-go-golems/clara/pkg/telephony"
	"github.com/go-go-golems/clara/pkg/tools"
	"github.com/go-go-golems/clara/pkg/transfer"
)

type fakeRuntime struct {
	startErr    error
	generateErr error

	startedRoom string
	startOpts   StartOptions
	generated   []string
	closed      bool
}

func (f *fakeRuntime) Start(_ context.Context, room string, opts StartOptions) error {
	f.startedRoom = room
	f.startOpts = opts
	return f.startErr
}

func (f *fakeRuntime) Generate(_ context.Context, instructions string) error {
	if f.generateErr != nil {
		return f.generateErr
	}
	f.generated = append(f.generated, instructions)
	return nil
}

func (f *fakeRuntime) Close() error {
	f.closed = true
	return nil
}

type stubRoomService struct{}

func (stubRoomService) CreateSIPParticipant(context.Context, telephony.SIPParticipantRequest) error {
	return nil
}
func (stubRoomService) DeleteRoom(context.Context, string) error { return nil }

func newTestManager(runtime *fakeRuntime) *Manager {
	rooms := stubRoomService{}
	toolbox := tools.NewToolbox(
		places.NewClient("test-key"),
		rooms,
		transfer.NewOrchestrator(rooms, &config.Config{}),
	)
	return NewManager(toolbox, nil, func() Runtime { return runtime }, DefaultRuntimeOptions())
}

func TestStartSessionBindsRoomAndGreets(t *testing.T) {
	runtime := &fakeRuntime{}
	manager := newTestManager(runtime)

	sess, err := manager.StartSession(context.Background(), "call-123")
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "call-123", sess.Room)
	assert.Equal(t, "sip", sess.Source)

	assert.Equal(t, "call-123", runtime.startedRoom)
	assert.Equal(t, Instructions, runtime.startOpts.Instructions)
	assert.Equal(t, "gpt-4o", runtime.startOpts.Options.LLMModel)
	require.NotNil(t, runtime.startOpts.Tools)
	assert.Len(t, runtime.startOpts.Tools.Tools(), 4)

	require.Len(t, runtime.generated, 1)
	assert.Equal(t, GreetingInstructions, runtime.generated[0])
}

func TestStartSessionClassifiesWebRooms(t *testing.T) {
	runtime := &fakeRuntime{}
	manager := newTestManager(runtime)

	sess, err := manager.StartSession(context.Background(), "web-abc")
	require.NoError(t, err)
	assert.Equal(t, "web", sess.Source)
}

func TestStartSessionAbandonsOnStartupFailure(t *testing.T) {
	runtime := &fakeRuntime{startErr: errors.New("transport refused")}
	manager := newTestManager(runtime)

	_, err := manager.StartSession(context.Background(), "call-123")
	require.Error(t, err)
	assert.True(t, runtime.closed, "abandoned sessions release their runtime")
	assert.Empty(t, runtime.generated)
}

func TestStartSessionAbandonsOnGreetingFailure(t *testing.T) {
	runtime := &fakeRuntime{generateErr: errors.New("tts unavailable")}
	manager := newTestManager(runtime)

	_, err := manager.StartSession(context.Background(), "call-123")
	require.Error(t, err)
	assert.True(t, runtime.closed)
}

func TestRunServesJobsUntilCancelled(t *testing.T) {
	runtime := &fakeRuntime{}
	manager := newTestManager(runtime)

	source := NewChannelSource(4)
	require.True(t, source.Enqueue("call-123"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- manager.Run(ctx, source)
	}()

	require.Eventually(t, func() bool {
		return runtime.startedRoom == "call-123"
	}, time.Second, 10*time.Millisecond)

	cancel()
	err := <-done
	require.ErrorIs(t, err, context.Canceled)
}

func TestChannelSourceReportsFullQueue(t *testing.T) {
	source := NewChannelSource(1)
	assert.True(t, source.Enqueue("call-1"))
	assert.False(t, source.Enqueue("call-2"))
}
