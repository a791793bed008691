package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pantrybase/backend/config"
)

// ImageService stores recipe photos in S3.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage stores the photo under the recipe's key prefix and
// returns its public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, body io.Reader, contentType string) (string, error) {
	key := fmt.Sprintf("recipes/%s/%s", recipeID, uuid.NewString())

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recipe image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

// PresignRecipeImage returns a time-limited read URL for a stored photo,
// for buckets without the public-read policy applied.
func (s *ImageService) PresignRecipeImage(ctx context.Context, objectKey string) (string, error) {
	return s.s3Config.GeneratePresignedURL(ctx, objectKey, 15*time.Minute)
}
