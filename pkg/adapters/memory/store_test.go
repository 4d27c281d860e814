package memory_test

import (
	"testing"

	"github.com/aretw0/balance/pkg/adapters/memory"
	contract "github.com/aretw0/balance/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	contract.StateStoreContractTest(t, store)
}
