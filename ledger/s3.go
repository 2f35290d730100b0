package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const s3LedgerKey = "deployment_state.json"

func NewS3(bucketName string) (Base, error) {
	var configs []func(*config.LoadOptions) error

	// Used by the test suite
	if val, ok := os.LookupEnv("DEPLOYER_LEDGER_S3_ENDPOINT"); ok {
		configs = append(configs, config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               val,
				HostnameImmutable: true,
				PartitionID:       "aws",
			}, nil
		})))
	}
	cfg, err := config.LoadDefaultConfig(context.Background(), configs...)
	if err != nil {
		return nil, err
	}
	s3Client := s3.NewFromConfig(cfg)

	_, err = s3Client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: &bucketName,
	})
	if err != nil {
		return nil, err
	}

	l := S3Store{
		log:        zap.L().With(zap.String("facility", "s3-ledger")),
		bucketName: aws.String(bucketName),
		client:     s3Client,
	}
	l.log.Info("Initialized S3 ledger store", zap.String("bucket_name", bucketName))
	return l, nil
}

// S3Store keeps the ledger as a single object, downloaded fully at startup
// and re-uploaded wholesale on every flush.
type S3Store struct {
	log        *zap.Logger
	bucketName *string
	client     *s3.Client
}

func (s S3Store) Load() (map[string]Entry, error) {
	buf := manager.NewWriteAtBuffer(nil)
	downloader := manager.NewDownloader(s.client)
	_, err := downloader.Download(context.Background(), buf, &s3.GetObjectInput{
		Bucket: s.bucketName,
		Key:    aws.String(s3LedgerKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return map[string]Entry{}, nil
		}
		return nil, err
	}

	entries := map[string]Entry{}
	if err = json.Unmarshal(buf.Bytes(), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s S3Store) Save(entries map[string]Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	uploader := manager.NewUploader(s.client)
	_, err = uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket:      s.bucketName,
		Key:         aws.String(s3LedgerKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	return err
}
