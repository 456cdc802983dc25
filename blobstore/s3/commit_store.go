package s3

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/kimeguida/ProCare/blobstore"
)

// DDBClient is the subset of the DynamoDB API CommitStore uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// ErrConcurrentModification is returned when another writer published
// a version of the same blob first.
var ErrConcurrentModification = blobstore.ErrConcurrentModification

const versionSep = ".v"

// CommitStore is a BlobStore whose Puts are versioned and published
// through DynamoDB conditional writes.
type CommitStore struct {
	store     *Store
	ddb       DDBClient
	tableName string
	baseURI   string
}

// NewCommitStore wraps store. baseURI (e.g. "s3://bucket/prefix") scopes
// the partition keys so several stores can share one table.
func NewCommitStore(store *Store, ddb DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		store:     store,
		ddb:       ddb,
		tableName: tableName,
		baseURI:   strings.TrimSuffix(baseURI, "/"),
	}
}

func (s *CommitStore) partition(name string) string {
	return s.baseURI + "/" + name
}

// versionedName is unique per attempt so a losing writer never
// overwrites the object a winner published.
func versionedName(name string, version uint64) string {
	return fmt.Sprintf("%s%s%020d-%s", name, versionSep, version, uuid.NewString())
}

// logicalName strips the version suffix written by Put.
func logicalName(object string) (string, bool) {
	i := strings.LastIndex(object, versionSep)
	if i < 0 {
		return "", false
	}
	suffix := object[i+len(versionSep):]
	if len(suffix) != 20+1+36 || suffix[20] != '-' {
		return "", false
	}
	if _, err := strconv.ParseUint(suffix[:20], 10, 64); err != nil {
		return "", false
	}
	if _, err := uuid.Parse(suffix[21:]); err != nil {
		return "", false
	}
	return object[:i], true
}

type commit struct {
	version uint64
	object  string
}

func (s *CommitStore) commits(ctx context.Context, name string, latestOnly bool) ([]commit, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.partition(name)},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if latestOnly {
		input.Limit = aws.Int32(1)
	}

	var out []commit
	for {
		resp, err := s.ddb.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query commits for %s: %w", name, err)
		}
		for _, item := range resp.Items {
			c, err := decodeCommit(item)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		if latestOnly || len(resp.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = resp.LastEvaluatedKey
	}
	return out, nil
}

func decodeCommit(item map[string]types.AttributeValue) (commit, error) {
	v, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return commit{}, errors.New("s3: invalid version attribute in DynamoDB")
	}
	obj, ok := item["object_key"].(*types.AttributeValueMemberS)
	if !ok {
		return commit{}, errors.New("s3: invalid object_key attribute in DynamoDB")
	}
	version, err := strconv.ParseUint(v.Value, 10, 64)
	if err != nil {
		return commit{}, fmt.Errorf("s3: parse version: %w", err)
	}
	return commit{version: version, object: obj.Value}, nil
}

// Version returns the latest published version of name, or 0 if none.
func (s *CommitStore) Version(ctx context.Context, name string) (uint64, error) {
	cs, err := s.commits(ctx, name, true)
	if err != nil || len(cs) == 0 {
		return 0, err
	}
	return cs[0].version, nil
}

// Open opens the latest published version of name.
func (s *CommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	cs, err := s.commits(ctx, name, true)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, blobstore.ErrNotFound
	}
	return s.store.Open(ctx, cs[0].object)
}

// Put uploads data as the next version of name and publishes it.
// It fails with ErrConcurrentModification if that version was taken.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	current, err := s.Version(ctx, name)
	if err != nil {
		return err
	}
	next := current + 1
	object := versionedName(name, next)

	if err := s.store.Put(ctx, object, data); err != nil {
		return err
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri":   &types.AttributeValueMemberS{Value: s.partition(name)},
			"version":    &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"object_key": &types.AttributeValueMemberS{Value: object},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		_ = s.store.Delete(ctx, object)
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("commit %s version %d: %w", name, next, err)
	}
	return nil
}

// Delete removes every version of name and its commit records.
func (s *CommitStore) Delete(ctx context.Context, name string) error {
	cs, err := s.commits(ctx, name, false)
	if err != nil {
		return err
	}
	for _, c := range cs {
		_, err := s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key: map[string]types.AttributeValue{
				"base_uri": &types.AttributeValueMemberS{Value: s.partition(name)},
				"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(c.version, 10)},
			},
		})
		if err != nil {
			return fmt.Errorf("delete commit %s version %d: %w", name, c.version, err)
		}
		if err := s.store.Delete(ctx, c.object); err != nil {
			return err
		}
	}
	return nil
}

// List returns logical blob names. Objects written outside Put are
// listed as they are.
func (s *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(objects))
	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		name, ok := logicalName(obj)
		if !ok {
			name = obj
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
