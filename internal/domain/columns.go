package domain

// Column names of the upstream sheets. These are a fixed external schema and
// must match byte-for-byte, including the trailing space in ColOrderType.
const (
	ColOrderID       = "OrderID"
	ColOrderDate     = "Order Date"
	ColDuePickupDate = "Due Pickup Date"
	ColDuePickupTime = "Due Pickup Time"
	ColFirstName     = "Customer First Name"
	ColLastName      = "Customer Last Name"
	ColOrderType     = "Order Type "
	ColTotal         = "Total"

	ColProductDescription = "Product Description"
	ColCategory           = "Category"
	ColUnitPrice          = "Unit Price"
	ColSubtotal           = "Subtotal (Calculated)"
	ColQuantity           = "CakeQty"
	ColTaxSubtotal        = "Tax Subtotal"
)

// Default sheet names. The line-items sheet name carries a trailing space.
const (
	DefaultOrdersSheet = "Customer Orders"
	DefaultItemsSheet  = "Bakery Products Ordered "
)

// Suffixes applied to columns present in both tables when flattening a merge.
const (
	OrderSuffix = "_order"
	ItemSuffix  = "_item"
)

// DisplayColumns are the merged-record fields returned by the data endpoint.
var DisplayColumns = []string{
	ColDuePickupDate,
	ColOrderDate,
	ColOrderID,
	ColFirstName,
	ColLastName,
	ColProductDescription,
	ColUnitPrice,
	ColSubtotal,
	ColDuePickupTime,
	ColOrderType,
	ColTotal,
}
