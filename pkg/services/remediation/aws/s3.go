package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/rs/zerolog"
)

const allUsersURI = "http://acs.amazonaws.com/groups/global/AllUsers"

// The bucket listers enumerate every bucket and probe one live property per
// action. A bucket whose probe fails is logged and dropped from the
// candidate set; one bad bucket never aborts the scan.

type bucketVersioningLister struct {
	client *s3.Client
}

func NewBucketVersioningLister(cfg awssdk.Config) *bucketVersioningLister {
	return &bucketVersioningLister{client: s3.NewFromConfig(cfg)}
}

func (l *bucketVersioningLister) List(ctx context.Context) ([]domain.ResourceCandidate, error) {
	names, err := listBucketNames(ctx, l.client)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	var candidates []domain.ResourceCandidate
	for _, name := range names {
		resp, err := l.client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{
			Bucket: aws.String(name),
		})
		if err != nil {
			logger.Warn().Err(err).Str("bucket", name).Msg("versioning probe failed, bucket skipped")
			continue
		}
		candidates = append(candidates, domain.ResourceCandidate{
			ID:                name,
			Kind:              domain.KindObjectBucket,
			VersioningEnabled: resp.Status == types.BucketVersioningStatusEnabled,
		})
	}
	return candidates, nil
}

type bucketLoggingLister struct {
	client *s3.Client
}

func NewBucketLoggingLister(cfg awssdk.Config) *bucketLoggingLister {
	return &bucketLoggingLister{client: s3.NewFromConfig(cfg)}
}

func (l *bucketLoggingLister) List(ctx context.Context) ([]domain.ResourceCandidate, error) {
	names, err := listBucketNames(ctx, l.client)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	var candidates []domain.ResourceCandidate
	for _, name := range names {
		resp, err := l.client.GetBucketLogging(ctx, &s3.GetBucketLoggingInput{
			Bucket: aws.String(name),
		})
		if err != nil {
			logger.Warn().Err(err).Str("bucket", name).Msg("logging probe failed, bucket skipped")
			continue
		}
		candidates = append(candidates, domain.ResourceCandidate{
			ID:             name,
			Kind:           domain.KindObjectBucket,
			LoggingEnabled: resp.LoggingEnabled != nil,
		})
	}
	return candidates, nil
}

type bucketAccessLister struct {
	client *s3.Client
}

func NewBucketAccessLister(cfg awssdk.Config) *bucketAccessLister {
	return &bucketAccessLister{client: s3.NewFromConfig(cfg)}
}

func (l *bucketAccessLister) List(ctx context.Context) ([]domain.ResourceCandidate, error) {
	names, err := listBucketNames(ctx, l.client)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	var candidates []domain.ResourceCandidate
	for _, name := range names {
		acl, err := l.client.GetBucketAcl(ctx, &s3.GetBucketAclInput{
			Bucket: aws.String(name),
		})
		if err != nil {
			logger.Warn().Err(err).Str("bucket", name).Msg("ACL probe failed, bucket skipped")
			continue
		}

		public := false
		for _, grant := range acl.Grants {
			if grant.Grantee != nil && aws.ToString(grant.Grantee.URI) == allUsersURI {
				public = true
				break
			}
		}

		// Any bucket policy counts as public access. Known over-approximation,
		// kept as the product-defined behavior.
		if !public {
			_, err := l.client.GetBucketPolicy(ctx, &s3.GetBucketPolicyInput{
				Bucket: aws.String(name),
			})
			public = err == nil
		}

		candidates = append(candidates, domain.ResourceCandidate{
			ID:           name,
			Kind:         domain.KindObjectBucket,
			PublicAccess: public,
		})
	}
	return candidates, nil
}

type objectLister struct {
	client *s3.Client
}

func NewObjectLister(cfg awssdk.Config) *objectLister {
	return &objectLister{client: s3.NewFromConfig(cfg)}
}

// List walks every bucket's object inventory. A bucket that cannot be listed
// is skipped with its objects; enumeration only fails when the bucket listing
// itself fails.
func (l *objectLister) List(ctx context.Context) ([]domain.ResourceCandidate, error) {
	names, err := listBucketNames(ctx, l.client)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	var candidates []domain.ResourceCandidate
	for _, name := range names {
		objects, err := l.listBucketObjects(ctx, name)
		if err != nil {
			logger.Warn().Err(err).Str("bucket", name).Msg("object listing failed, bucket skipped")
			continue
		}
		candidates = append(candidates, objects...)
	}
	return candidates, nil
}

func (l *objectLister) listBucketObjects(ctx context.Context, bucket string) ([]domain.ResourceCandidate, error) {
	var (
		candidates        []domain.ResourceCandidate
		continuationToken *string
	)

	for {
		resp, err := l.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, err
		}

		for _, obj := range resp.Contents {
			storageClass := string(obj.StorageClass)
			if storageClass == "" {
				storageClass = "STANDARD"
			}
			key := aws.ToString(obj.Key)
			candidates = append(candidates, domain.ResourceCandidate{
				ID:           bucket + "/" + key,
				Kind:         domain.KindObjectEntry,
				Bucket:       bucket,
				Key:          key,
				SizeBytes:    aws.ToInt64(obj.Size),
				StorageClass: storageClass,
				CreatedAt:    aws.ToTime(obj.LastModified),
			})
		}

		if !aws.ToBool(resp.IsTruncated) {
			break
		}
		continuationToken = resp.NextContinuationToken
	}
	return candidates, nil
}

type versioningEnabler struct {
	client *s3.Client
}

func NewVersioningEnabler(cfg awssdk.Config) *versioningEnabler {
	return &versioningEnabler{client: s3.NewFromConfig(cfg)}
}

func (m *versioningEnabler) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	_, err := m.client.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: aws.String(candidate.ID),
		VersioningConfiguration: &types.VersioningConfiguration{
			Status: types.BucketVersioningStatusEnabled,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to enable versioning on bucket %s: %w", candidate.ID, err)
	}
	return nil
}

type loggingEnabler struct {
	client *s3.Client
	region string
}

func NewLoggingEnabler(cfg awssdk.Config) *loggingEnabler {
	return &loggingEnabler{client: s3.NewFromConfig(cfg), region: cfg.Region}
}

// Apply directs access logs to a sibling "<bucket>-logs" bucket, creating it
// when absent.
func (m *loggingEnabler) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	target := candidate.ID + "-logs"

	input := &s3.CreateBucketInput{Bucket: aws.String(target)}
	if m.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(m.region),
		}
	}
	if _, err := m.client.CreateBucket(ctx, input); err != nil {
		var exists *types.BucketAlreadyExists
		var owned *types.BucketAlreadyOwnedByYou
		if !errors.As(err, &exists) && !errors.As(err, &owned) {
			return fmt.Errorf("failed to create log bucket %s: %w", target, err)
		}
	}

	_, err := m.client.PutBucketLogging(ctx, &s3.PutBucketLoggingInput{
		Bucket: aws.String(candidate.ID),
		BucketLoggingStatus: &types.BucketLoggingStatus{
			LoggingEnabled: &types.LoggingEnabled{
				TargetBucket: aws.String(target),
				TargetPrefix: aws.String(candidate.ID + "/"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to enable logging on bucket %s: %w", candidate.ID, err)
	}
	return nil
}

type aclPrivater struct {
	client *s3.Client
}

func NewACLPrivater(cfg awssdk.Config) *aclPrivater {
	return &aclPrivater{client: s3.NewFromConfig(cfg)}
}

func (m *aclPrivater) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	_, err := m.client.PutBucketAcl(ctx, &s3.PutBucketAclInput{
		Bucket: aws.String(candidate.ID),
		ACL:    types.BucketCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to set bucket %s private: %w", candidate.ID, err)
	}
	return nil
}

type objectTransitioner struct {
	client *s3.Client
}

func NewObjectTransitioner(cfg awssdk.Config) *objectTransitioner {
	return &objectTransitioner{client: s3.NewFromConfig(cfg)}
}

// Apply rewrites the object in place with the infrequent-access storage
// class.
func (m *objectTransitioner) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	_, err := m.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:            aws.String(candidate.Bucket),
		Key:               aws.String(candidate.Key),
		CopySource:        aws.String(candidate.Bucket + "/" + candidate.Key),
		StorageClass:      types.StorageClassStandardIa,
		MetadataDirective: types.MetadataDirectiveCopy,
	})
	if err != nil {
		return fmt.Errorf("failed to transition object %s: %w", candidate.ID, err)
	}
	return nil
}

func listBucketNames(ctx context.Context, client *s3.Client) ([]string, error) {
	resp, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list S3 buckets: %w", err)
	}

	names := make([]string, 0, len(resp.Buckets))
	for _, bucket := range resp.Buckets {
		names = append(names, aws.ToString(bucket.Name))
	}
	return names, nil
}
