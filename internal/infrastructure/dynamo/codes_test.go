package dynamo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient points a real DynamoDB client at a local test server so repo
// error handling can be exercised without a live table. Retries are off so
// server failures surface on the first call.
func stubClient(t *testing.T, h http.HandlerFunc) *dynamodb.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return dynamodb.New(dynamodb.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("test", "test", ""),
		BaseEndpoint: aws.String(srv.URL),
		Retryer:      aws.NopRetryer{},
	})
}

func TestDeleteByCode_MissingCode_NoError(t *testing.T) {
	client := stubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/x-amz-json-1.0")
		_, _ = w.Write([]byte(`{"Items":[],"Count":0,"ScannedCount":0}`))
	})
	repo := NewCodeRepo(client, "verification_codes")

	removed, err := repo.DeleteByCode(context.Background(), "123456")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteByCode_StoreFailure_ReturnsError(t *testing.T) {
	client := stubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/x-amz-json-1.0")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"__type":"InternalServerError","message":"internal error"}`))
	})
	repo := NewCodeRepo(client, "verification_codes")

	// An outage must not read as "nothing to remove": callers distinguish an
	// already-consumed code from a store that could not answer.
	removed, err := repo.DeleteByCode(context.Background(), "123456")
	require.Error(t, err)
	assert.False(t, removed)
}
