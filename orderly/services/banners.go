package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	lru "github.com/hashicorp/golang-lru"
)

const (
	bannerCacheSize = 512
	bannerCacheTTL  = 10 * time.Minute
	maxBannerSize   = 8 << 20
)

var ErrBannerTooLarge = errors.New("banner exceeds 8 MiB")

type bannerLookup struct {
	found     bool
	checkedAt time.Time
}

// BannerStore keeps one level-up banner per guild in a Spaces bucket under
// {prefix}/{guild_id}.png.
type BannerStore struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	cache  *lru.Cache
}

func NewBannerStore(ctx context.Context, key, secret, region, bucket, prefix string) (*BannerStore, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	cache, _ := lru.New(bannerCacheSize)
	if prefix == "" {
		prefix = "banners"
	}
	return &BannerStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		prefix: strings.Trim(prefix, "/"),
		cache:  cache,
	}, nil
}

func (b *BannerStore) objectKey(guildID string) string {
	return fmt.Sprintf("%s/%s.png", b.prefix, guildID)
}

func (b *BannerStore) publicURL(guildID string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", b.bucket, b.region, b.objectKey(guildID))
}

// BannerURL returns the guild's banner URL if one was uploaded. Lookups
// are cached, and a failed HEAD counts as no banner.
func (b *BannerStore) BannerURL(ctx context.Context, guildID string) (string, bool) {
	if v, ok := b.cache.Get(guildID); ok {
		l := v.(bannerLookup)
		if time.Since(l.checkedAt) < bannerCacheTTL {
			return b.publicURL(guildID), l.found
		}
	}

	key := b.objectKey(guildID)
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
	})
	found := err == nil
	if err != nil {
		var nf *types.NotFound
		if !errors.As(err, &nf) {
			slog.Warn("Banner lookup failed",
				slog.String("type", "sys"),
				slog.String("guild_id", guildID),
				slog.Any("error", err))
			return "", false
		}
	}

	b.cache.Add(guildID, bannerLookup{found: found, checkedAt: time.Now()})
	return b.publicURL(guildID), found
}

// Upload stores a PNG banner for the guild and returns its public URL.
func (b *BannerStore) Upload(ctx context.Context, guildID string, body io.Reader, size int64) (string, error) {
	if size > maxBannerSize {
		return "", ErrBannerTooLarge
	}
	key := b.objectKey(guildID)
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &b.bucket,
		Key:           &key,
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload banner: %w", err)
	}
	b.cache.Add(guildID, bannerLookup{found: true, checkedAt: time.Now()})
	return b.publicURL(guildID), nil
}

func (b *BannerStore) Delete(ctx context.Context, guildID string) error {
	key := b.objectKey(guildID)
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	b.cache.Remove(guildID)
	return nil
}
