package service

import (
	"testing"

	radix "github.com/mediocregopher/radix/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statsStub 内存版 Redis，只认 SETEX/GET
func statsStub(store map[string]string) radix.Conn {
	return radix.Stub("tcp", "127.0.0.1:6379", func(args []string) interface{} {
		switch args[0] {
		case "SETEX":
			store[args[1]] = args[3]
			return "OK"
		case "GET":
			if v, ok := store[args[1]]; ok {
				return v
			}
			return nil
		}
		return nil
	})
}

func TestPublishAndReadStats(t *testing.T) {
	store := make(map[string]string)
	stub := statsStub(store)
	defer stub.Close()

	m := &Monitor{}
	m.RecordCheckoutRequest()
	m.RecordCheckoutSuccess()
	m.RecordLoginFailure()

	require.NoError(t, m.Publish(stub, StatsProcWeb))

	stats, err := ReadStats(stub, StatsProcWeb)
	require.NoError(t, err)
	require.NotNil(t, stats)

	checkout, ok := stats["checkout"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), checkout["requests"])
	assert.Equal(t, float64(1), checkout["success"])

	sess, ok := stats["session"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), sess["login_failures"])
}

func TestReadStatsMissingProc(t *testing.T) {
	stub := statsStub(make(map[string]string))
	defer stub.Close()

	stats, err := ReadStats(stub, StatsProcWorker)
	require.NoError(t, err)
	assert.Nil(t, stats)
}
