package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"meteory_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues delayed follow-up tasks.
type Client struct {
	client *asynq.Client
	queue  string
	delay  time.Duration
}

// NewClient creates the task client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	delay := cfg.GetLeadFollowupDelay()
	if delay <= 0 {
		delay = 72 * time.Hour
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
		delay:  delay,
	}, nil
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleFollowUp enqueues a reminder that fires after the configured delay.
// Implements the leads service scheduler interface.
func (c *Client) ScheduleFollowUp(ctx context.Context, leadID int64, name, email string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewLeadFollowupTask(LeadFollowupPayload{LeadID: leadID, Name: name, Email: email})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessIn(c.delay), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
