package receipts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDomainNormalizesAuditVariants(t *testing.T) {
	dto := receiptDTO{
		ID:           10,
		Code:         "PN-0010",
		Status:       "IMPORTED",
		ImportsDate:  "2025-01-12T08:30:00",
		CreatedBy:    "thu.ng",
		CreatedDate:  "2025-01-12T08:30:00",
		ApprovedBy:   "manager1",
		ApprovedAt:   "2025-01-12T10:00:00",
		ImportedBy:   "staff2",
		ImportedAt:   "2025-01-13T09:00:00",
	}

	r := dto.toDomain(KindImport)
	require.Equal(t, "2025-01-12T08:30:00", r.Date)

	require.NotNil(t, r.Created)
	require.Equal(t, "thu.ng", r.Created.Actor)
	// Name falls back to the actor when the backend omits it.
	require.Equal(t, "thu.ng", r.Created.Name)
	require.Equal(t, "2025-01-12T08:30:00", r.Created.At)

	require.NotNil(t, r.Completed)
	require.Equal(t, "staff2", r.Completed.Actor)
	require.Nil(t, r.Rejected)
}

func TestToDomainPrefersUnitName(t *testing.T) {
	dto := receiptDTO{
		ID: 1,
		Items: []itemDTO{
			{ImportDetailID: 55, ProductID: 9, Unit: "pcs", UnitName: "Cái", Quantity: 3},
		},
	}
	r := dto.toDomain(KindImport)
	require.Len(t, r.Items, 1)
	require.Equal(t, "Cái", r.Items[0].Unit)
	require.EqualValues(t, 55, r.Items[0].ID)
}

func TestItemTotalStaysExact(t *testing.T) {
	require.Equal(t, float64(270000), ItemTotal(300000, 1, 10))
	require.Equal(t, float64(21990000), ItemTotal(21990000, 1, 0))
	// 5% off three lines of 2.090.000 must not drift through float math.
	require.Equal(t, float64(5956500), ItemTotal(2090000, 3, 5))
}

func TestReceiptTotalSumsLines(t *testing.T) {
	items := []Item{
		{Quantity: 1, UnitPrice: 300000, DiscountPercent: 10},
		{Quantity: 2, UnitPrice: 50000},
	}
	require.Equal(t, float64(370000), ReceiptTotal(items))
}
