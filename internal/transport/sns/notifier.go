// Package sns dispatches push notifications through AWS SNS.
package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Notifier publishes opportunity alerts to a single configured SNS target.
// Per-user token lookup is a known follow-up; today every alert goes to the
// one target from config.
type Notifier struct {
	client    *sns.Client
	targetARN string
}

// NewNotifier creates an SNS notifier for the given region and target.
func NewNotifier(ctx context.Context, region, targetARN string) (*Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Notifier{client: sns.NewFromConfig(cfg), targetARN: targetARN}, nil
}

// Notify publishes a push message with the given title and body.
func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TargetArn: aws.String(n.targetARN),
		Subject:   aws.String(title),
		Message:   aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
