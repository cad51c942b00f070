package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/samber/lo"
)

type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SQSSender struct {
	client   SQSAPI
	queueURL string
}

func NewSQSSender(client SQSAPI, queueURL string) *SQSSender {
	return &SQSSender{client: client, queueURL: queueURL}
}

// NewSQSSenderFromEnv loads the default AWS credential chain for region.
func NewSQSSenderFromEnv(ctx context.Context, region, queueURL string) (*SQSSender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("config.LoadDefaultConfig: %w", err)
	}

	return NewSQSSender(sqs.NewFromConfig(cfg), queueURL), nil
}

func (s *SQSSender) Send(ctx context.Context, job domain.Job) (string, error) {
	out, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(job.Payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"job_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(job.ID.String()),
			},
			"job_name": {
				DataType:    aws.String("String"),
				StringValue: aws.String(job.Name),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("client.SendMessage: %w", err)
	}

	if out == nil || out.MessageId == nil {
		return "", errors.New("client.SendMessage: empty message id")
	}

	return lo.FromPtr(out.MessageId), nil
}
