package domain

// Canonical chart-of-accounts codes. Sub-ledger accounts are derived from
// these parents, e.g. L200-C00007 for a client deposit account or
// E210-V000123 for a vehicle freight account.
const (
	CodeBank             = "A100"
	CodeCash             = "A110"
	CodeReceivable       = "A130"
	CodeAuctionClearing  = "A150"
	CodeVehicleInventory = "A200"

	CodeClientDeposits  = "L200"
	CodeAccountsPayable = "L210"

	CodeCarSalesRevenue   = "R100"
	CodeCommissionRevenue = "R150"
	CodeServiceRevenue    = "R300"

	CodeOperationalExpense = "E200"
	CodeFreightExpense     = "E210"
	CodeCustomsExpense     = "E220"
	CodeStorageExpense     = "E230"
)

// Report prefixes. Reports select accounts by code prefix so that derived
// sub-ledger accounts are picked up without enumerating them.
const (
	PrefixAsset          = "A"
	PrefixLiability      = "L"
	PrefixEquity         = "C" // capital accounts; unused by the seed chart
	PrefixRevenue        = "R"
	PrefixExpense        = "E"
	PrefixClientDeposits = "L200" // trust-fund liability accounts
)

// BankCashCodes are the parent codes of the liquid accounts the cash-flow
// report tracks. A prefix match cannot express this set: "A1" would also
// sweep in A130 Receivable and A150 Auction Clearing, which move without any
// cash changing hands.
var BankCashCodes = []string{CodeBank, CodeCash}
