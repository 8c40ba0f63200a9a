package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu    sync.Mutex
	names []string
	dims  map[string]map[string]string
}

func (f *fakeWriter) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dims == nil {
		f.dims = map[string]map[string]string{}
	}
	for _, d := range in.MetricData {
		name := aws.ToString(d.MetricName)
		f.names = append(f.names, name)
		dims := map[string]string{}
		for _, dim := range d.Dimensions {
			dims[aws.ToString(dim.Name)] = aws.ToString(dim.Value)
		}
		f.dims[name] = dims
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestNewClient_DisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development", "us-east-1")
	require.NoError(t, err)
	assert.False(t, client.enabled)

	// no-ops must not panic without an AWS client
	client.RecordAPIRequest("/health", 200, time.Millisecond)
	client.RecordSongWrite("create")
	client.Close()
}

func TestClient_NilIsNoop(t *testing.T) {
	var client *Client
	assert.NotPanics(t, func() {
		client.RecordTransposition(2, false)
		client.RecordSongWrite("delete")
		client.Close()
	})
}

func TestClient_RecordAPIRequest(t *testing.T) {
	writer := &fakeWriter{}
	client := newClientWithWriter(writer, "production")

	client.RecordAPIRequest("/api/v1/songs", 200, 12*time.Millisecond)
	client.RecordAPIRequest("/api/v1/songs", 503, time.Millisecond)
	client.Close()

	assert.ElementsMatch(t, []string{"APIRequests", "APILatency", "APIErrors", "APILatency"}, writer.names)
	assert.Equal(t, "/api/v1/songs", writer.dims["APIRequests"]["Endpoint"])
	assert.Equal(t, "production", writer.dims["APIRequests"]["Environment"])
}

func TestClient_RecordTransposition(t *testing.T) {
	writer := &fakeWriter{}
	client := newClientWithWriter(writer, "production")

	client.RecordTransposition(-3, true)
	client.Close()

	require.Equal(t, []string{"Transpositions"}, writer.names)
	assert.Equal(t, "down", writer.dims["Transpositions"]["Direction"])
	assert.Equal(t, "true", writer.dims["Transpositions"]["UseFlats"])
}

func TestClient_RecordSongWrite(t *testing.T) {
	writer := &fakeWriter{}
	client := newClientWithWriter(writer, "production")

	client.RecordSongWrite("update")
	client.Close()

	require.Equal(t, []string{"SongWrites"}, writer.names)
	assert.Equal(t, "update", writer.dims["SongWrites"]["Operation"])
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "up", direction(2))
	assert.Equal(t, "down", direction(-1))
	assert.Equal(t, "none", direction(0))
}
