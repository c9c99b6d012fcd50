package db

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/util"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// BatchGetItem accepts at most 100 keys per call.
const maxBatchKeys = 100

// ManifestStore reads instrument manifests from a DynamoDB table keyed by
// instrument name (PK) with a numeric Program and a Notes map.
type ManifestStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewManifestStore(endpoint, region, table string) (*ManifestStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return &ManifestStore{client: dynamodb.New(sess), table: table}, nil
}

func NewManifestStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *ManifestStore {
	return &ManifestStore{client: client, table: table}
}

func (s *ManifestStore) GetInstrumentManifests(names []string) (map[string]model.InstrumentManifest, error) {
	res := make(map[string]model.InstrumentManifest)

	for start := 0; start < len(names); start += maxBatchKeys {
		end := util.Min(start+maxBatchKeys, len(names))

		var keys []map[string]*dynamodb.AttributeValue
		for _, name := range names[start:end] {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(name)},
			})
		}

		request := map[string]*dynamodb.KeysAndAttributes{
			s.table: {Keys: keys},
		}
		for len(request) > 0 {
			dbres, err := s.client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, fmt.Errorf("error from DynamoDB: %w", err)
			}
			for _, item := range dbres.Responses[s.table] {
				m, err := toManifest(item)
				if err != nil {
					return nil, err
				}
				res[m.Name] = m
			}
			request = dbres.UnprocessedKeys
		}
	}

	return res, nil
}

func toManifest(item map[string]*dynamodb.AttributeValue) (model.InstrumentManifest, error) {
	var m model.InstrumentManifest
	if pk := item["PK"]; pk == nil || pk.S == nil {
		return m, errors.New("manifest item without PK")
	}
	m.Name = *item["PK"].S

	if v := item["Program"]; v != nil && v.N != nil {
		program, err := strconv.ParseUint(*v.N, 10, 7)
		if err != nil {
			return m, fmt.Errorf("manifest %q has a bad program: %w", m.Name, err)
		}
		m.Program = uint8(program)
	}

	m.Notes = make(map[string]string)
	if v := item["Notes"]; v != nil {
		for note, file := range v.M {
			if file != nil && file.S != nil {
				m.Notes[note] = *file.S
			}
		}
	}
	return m, nil
}
