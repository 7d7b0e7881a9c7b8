package extract

import (
	"encoding/json"
	"strings"

	"github.com/joseph-ayodele/invoice-pipeline/constants"
)

// SystemMessage frames the engine as a wholesale-invoice analyst. Duplicate
// items are explicitly wanted: the same item number can legitimately recur.
const SystemMessage = "You are an expert invoice analysis AI specialized in wholesale produce invoices. " +
	"Extract structured information with complete accuracy, maintain data integrity across all fields, " +
	"apply the standardized validation rules, handle missing data according to the default rules, " +
	"verify every calculation, and extract ALL items even when they are duplicates."

// fragmentTemplate is the JSON shape the engine must return, embedded in the
// prompt verbatim. Field names here are the wire contract; the fragment
// accessors and conversion code key off them.
func fragmentTemplate() map[string]any {
	return map[string]any{
		"Supplier Name":    "",
		"Sold to Address":  "",
		"Order Date":       "",
		"Ship Date":        "",
		"Invoice Number":   "",
		"Shipping Address": "",
		"Total":            0,
		"List of Items": []map[string]any{
			{
				"Item Number":              "",
				"Item Name":                "",
				"Product Category":         "",
				"Quantity Shipped":         1.0,
				"Extended Price":           1.0,
				"Quantity In a Case":       1.0,
				"Measurement Of Each Item": 1.0,
				"Measured In":              "",
				"Total Units Ordered":      1.0,
				"Case Price":               0,
				"Catch Weight":             "",
				"Priced By":                "",
				"Splitable":                "",
				"Split Price":              "N/A",
				"Cost of a Unit":           1.0,
				"Currency":                 "",
				"Cost of Each Item":        1.0,
			},
		},
	}
}

// BuildPrompt assembles the full extraction rulebook around the formatted
// page text: header field rules, line-item rules, the unit-normalization
// table, validation rules and the embedded JSON template.
func BuildPrompt(pageText string) string {
	var b strings.Builder

	b.WriteString(`DETAILED INVOICE ANALYSIS INSTRUCTIONS:

1. HEADER INFORMATION
   - Supplier Name: check "Vendor:", "Supplier:", "From:", "Sold By:". Use the FIRST supplier
     name found, use exactly the same name throughout, do not modify or formalize it.
   - Sold to Address: check "Sold To:", "Bill To:", "Customer:". Complete address with street,
     city, state, ZIP.
   - Order Date: check "Order Date:", "Date Ordered:", "PO Date:". Format YYYY-MM-DD.
   - Ship Date: check "Ship Date:", "Delivery Date:", "Shipped:". Format YYYY-MM-DD.
   - Invoice Number: check "Invoice #:", "Invoice No", "Invoice Number:", "Invoice ID:".
     Include all digits and characters, keep leading zeros.
   - Shipping Address: check "Ship To:", "Deliver To:", "Destination:". Complete delivery address.
   - Total: check "Total:", "Amount Due:", "Balance Due:". Must match the sum of line items,
     include tax if listed, round to 2 decimals.

2. LINE ITEM DETAIL
   Extract ALL items even when duplicated. For each item:
   - Item Number: check "Product Code:", "Item Number:", "SKU:", "UPC:". Keep the full
     identifier including leading zeros.
   - Item Name: check "Description:", "Product:", "Item:". Include the full description with
     measurement, keep the original format.
   - Product Category: classify as exactly one of: `)
	b.WriteString(strings.Join(constants.CategoryStrings(), ", "))
	b.WriteString(`.

   Quantity and measurement rules (primary source is the "Pack Size" field, patterns like
   "6 64 OZ", "4 5 LB", "10 4 PK"):
   - Quantity In a Case: the FIRST number in the pack size. Default 1 when the pack size does
     not contain two numbers.
   - Measurement Of Each Item: the SECOND number in the pack size. Default 1.
   - Measured In: the unit following the second number, converted to a standard unit:
       WEIGHT      pounds: LB, LBS, #, POUND | ounces: OZ, OUNCE | kilos: KG, KILO | grams: G, GM, GRAM
       COUNT       each: EA, PC, CT, COUNT, PIECE | case: CS, CASE, BX, BOX | dozen: DOZ, DZ |
                   pack: PK, PACK, PKG | bundle: BDL, BUNDLE
       VOLUME      gallons: GAL, GALLON | quarts: QT, QUART | pints: PT, PINT |
                   fluid_ounces: FL OZ, FLOZ | liters: L, LT, LTR | milliliters: ML
       CONTAINERS  cans: CN, CAN, #10 CAN | jars: JR, JAR | bottles: BTL, BOTTLE |
                   containers: CTN, CONT | tubs: TB, TUB | bags: BG, BAG
       PRODUCE     bunch: BN, BCH, BUNCH | head: HD, HEAD | basket: BSK, BASKET |
                   crate: CRT, CRATE | carton: CRTN, CARTON
   - Quantity Shipped: the number of complete cases ordered and delivered, from "Quantity",
     "Qty", "Shipped" or "Cases Ordered". Default 1 when not provided. Never confuse it with
     Quantity In a Case.
   - Total Units Ordered = Quantity In a Case * Measurement Of Each Item * Quantity Shipped.
     Example: "6 64 OZ" shipped once -> 6 * 64 * 1 = 384.

   Pricing rules:
   - Extended Price: check "Ext Price:", "Total:", "Amount:". Must equal Case Price * Quantity Shipped.
   - Case Price: check "Unit Price:". Price for a single case.
   - Cost of a Unit = Extended Price / Total Units Ordered.
   - Cost of Each Item = Cost of a Unit * Measurement Of Each Item.
   - Currency: default "USD" when not specified.

   Additional attributes:
   - Catch Weight: "YES" when the item number matches the previous item but Quantity Shipped
     differs, else "N/A".
   - Priced By: one of "per Case", "per pound", "per each", "per dozen", "per Ounce".
   - Splitable: "YES" only with an explicit YES reference; bulk-only or single-unit items are "NO".
   - Split Price: Case Price / Quantity In a Case when Splitable = "YES", else "N/A".

3. VALIDATION RULES
   - All quantities and prices must be positive.
   - Required: Supplier Name, Invoice Number, Total, Item Name, Extended Price.
   - Defaults: Quantity 1.0, Currency "USD", Split Price "N/A", Category "OTHER".

OUTPUT FORMAT:
Return a JSON array containing each invoice as an object matching this template:
`)
	b.WriteString(mustJSON(fragmentTemplate()))
	b.WriteString("\n\nINVOICE TEXT TO PROCESS:\n")
	b.WriteString(pageText)
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
