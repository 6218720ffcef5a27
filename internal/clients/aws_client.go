package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type AWSConfig struct {
	Region string
	// Endpoint overrides the service endpoint, e.g. DynamoDB Local.
	Endpoint string
}

func LoadAWSConfig(ctx context.Context, cfg AWSConfig) (aws.Config, error) {
	slog.Info("[AWSClient] Initializing AWS Config...", slog.String("region", cfg.Region))
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("[AWSClient] failed to load AWS config: %w", err)
	}
	slog.Info("[AWSClient] AWS Config Initialized")
	return awsCfg, nil
}

func NewDynamoDBClient(awsCfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}
