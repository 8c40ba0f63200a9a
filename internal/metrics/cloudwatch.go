package metrics

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "Chordbook/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// metricWriter is the part of the CloudWatch API the client needs
type metricWriter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      metricWriter
	enabled     bool
	environment string
	inflight    sync.WaitGroup
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment, region string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return newClientWithWriter(cloudwatch.NewFromConfig(cfg), environment), nil
}

func newClientWithWriter(w metricWriter, environment string) *Client {
	return &Client{
		client:      w,
		enabled:     true,
		environment: environment,
	}
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	// Determine if success or error
	metricName := "APIRequests"
	if statusCode >= httpStatusServerError {
		metricName = "APIErrors"
	}

	m.send(func(ctx context.Context) {
		dimensions := m.dimensions("Endpoint", endpoint)

		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	})
}

// RecordTransposition counts transpositions by direction
func (m *Client) RecordTransposition(semitones int, useFlats bool) {
	m.send(func(ctx context.Context) {
		dimensions := m.dimensions("Direction", direction(semitones))
		dimensions = append(dimensions, types.Dimension{
			Name:  aws.String("UseFlats"),
			Value: aws.String(strconv.FormatBool(useFlats)),
		})

		if err := m.putMetric(ctx, "Transpositions", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record Transpositions metric: %v", err)
		}
	})
}

// RecordSongWrite counts song create/update/delete operations
func (m *Client) RecordSongWrite(operation string) {
	m.send(func(ctx context.Context) {
		dimensions := m.dimensions("Operation", operation)
		if err := m.putMetric(ctx, "SongWrites", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record SongWrites metric: %v", err)
		}
	})
}

// Close waits for metrics that are still being sent
func (m *Client) Close() {
	if m == nil {
		return
	}
	m.inflight.Wait()
}

// send is a no-op on a nil or disabled client
func (m *Client) send(fn func(ctx context.Context)) {
	if m == nil || !m.enabled {
		return
	}

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		fn(context.Background())
	}()
}

func (m *Client) dimensions(name, value string) []types.Dimension {
	return []types.Dimension{
		{
			Name:  aws.String(name),
			Value: aws.String(value),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}
