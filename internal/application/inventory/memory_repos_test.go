package inventory

import (
	"github.com/bookdist/backend/tests/testutil"
)

// testFixture bundles the in-memory repositories with a scope and service
// ready for use
type testFixture struct {
	batches      *testutil.MemoryBatchRepo
	transactions *testutil.MemoryTxnRepo
	allocations  *testutil.MemoryAllocationRepo
	orders       *testutil.MemoryOrderRepo
	requirements *testutil.MemoryRequirementRepo
	postings     *testutil.MemoryPostingRepo
	scope        *NoOpTransactionScope
	service      *StockService
}

func newTestFixture() *testFixture {
	f := &testFixture{
		batches:      testutil.NewMemoryBatchRepo(),
		transactions: testutil.NewMemoryTxnRepo(),
		allocations:  testutil.NewMemoryAllocationRepo(),
		orders:       testutil.NewMemoryOrderRepo(),
		requirements: testutil.NewMemoryRequirementRepo(),
		postings:     testutil.NewMemoryPostingRepo(),
	}
	f.scope = NewNoOpTransactionScope(f.batches, f.transactions, f.allocations, f.orders, f.requirements, f.postings)
	f.service = NewStockService(f.scope, f.batches, f.transactions)
	return f
}
