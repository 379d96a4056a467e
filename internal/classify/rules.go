package classify

import (
	"strings"

	"pouch-dashboard/internal/models"
)

type predicate func(label string) bool

type rule struct {
	match    predicate
	category models.FinancialCategory
}

func contains(word string) predicate {
	return func(label string) bool { return strings.Contains(label, word) }
}

func anyOf(words ...string) predicate {
	return func(label string) bool {
		for _, w := range words {
			if strings.Contains(label, w) {
				return true
			}
		}
		return false
	}
}

// word matches a whole whitespace/punctuation separated token, for short
// tokens like "ads" that also occur inside other words.
func word(token string) predicate {
	return func(label string) bool {
		fields := strings.FieldsFunc(label, func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
		})
		for _, f := range fields {
			if f == token {
				return true
			}
		}
		return false
	}
}

func and(preds ...predicate) predicate {
	return func(label string) bool {
		for _, p := range preds {
			if !p(label) {
				return false
			}
		}
		return true
	}
}

func or(preds ...predicate) predicate {
	return func(label string) bool {
		for _, p := range preds {
			if p(label) {
				return true
			}
		}
		return false
	}
}

var (
	shopify  = contains("shopify")
	tiktok   = contains("tiktok")
	shipping = contains("shipping")
	income   = contains("income")
	contra   = anyOf("refund", "discount", "return", "chargeback")
)

// financialRules is evaluated top to bottom and the first match wins. Several
// rules overlap (a Shopify refund also mentions "refund"; TikTok shipping
// income also mentions "tiktok" and "shipping") so the order is load-bearing.
var financialRules = []rule{
	{and(shopify, contra), models.ShopifyDiscounts},
	{and(tiktok, contra), models.TikTokDiscounts},
	{and(tiktok, shipping, income), models.TikTokIncome},
	{and(shopify, shipping, income), models.ShopifyIncome},
	{and(tiktok, or(word("ads"), anyOf("advertis", "promot", "affiliate", "creator"))), models.MarketingExpenses},
	{and(tiktok, shipping), models.OutwardShipping},
	{and(shopify, anyOf("subscription", "plan", "app")), models.OperatingExpenses},
	{and(or(shopify, tiktok), anyOf("fee", "charge", "commission", "payment")), models.MerchantFees},
	{and(shopify, anyOf("sales", "income", "revenue", "payout")), models.ShopifyIncome},
	{and(tiktok, anyOf("sales", "income", "revenue", "settlement", "payout")), models.TikTokIncome},
	{contra, models.OtherIncome},
	{anyOf("cost of goods", "cogs", "cost of sales", "product cost", "packaging", "ingredient", "co-pack", "copack", "manufactur", "raw material"), models.CostOfGoodsSold},
	{anyOf("inbound", "inward", "freight", "import dut", "customs", "duties"), models.InwardShipping},
	{and(shipping, income), models.OtherIncome},
	{anyOf("shipping", "postage", "delivery", "fulfil", "courier", "3pl", "shipstation"), models.OutwardShipping},
	{anyOf("merchant", "stripe", "paypal", "payment processing", "processing fee", "transaction fee", "afterpay", "klarna", "shop pay"), models.MerchantFees},
	{or(word("ads"), anyOf("advertis", "marketing", "facebook", "instagram", "google ad", "influencer", "affiliate", "sponsor", "promotion", "sampling")), models.MarketingExpenses},
	{anyOf("income", "sales", "revenue", "interest earned", "interest received", "grant", "rebate"), models.OtherIncome},
	{anyOf("rent", "software", "subscription", "salar", "wage", "payroll", "insurance", "accounting", "bookkeeping", "legal", "professional", "utilit", "office", "travel", "meal", "telephone", "internet", "bank", "depreciation", "contractor", "consult", "dues", "licen", "tax", "expense", "repairs"), models.OperatingExpenses},
}

// rollupPhrases mark subtotal lines of the statement. Their values are
// re-derived from the categories, so they are never classified.
var rollupPhrases = []string{
	"total for",
	"total income",
	"total expenses",
	"total cost of",
	"total other",
	"gross profit",
	"net operating income",
	"net other income",
	"net income",
}

// IsRollupLabel reports whether a P&L label is a subtotal/total line.
func IsRollupLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, phrase := range rollupPhrases {
		if strings.Contains(l, phrase) {
			return true
		}
	}
	return false
}

// Classify maps an account label to its financial category. It is total: an
// unmatched label is Uncategorized.
func Classify(label string) models.FinancialCategory {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return models.Uncategorized
	}
	for _, r := range financialRules {
		if r.match(l) {
			return r.category
		}
	}
	return models.Uncategorized
}

// Classifier memoises Classify per label for the lifetime of one dataset load.
type Classifier struct {
	seen map[string]models.FinancialCategory
}

func NewClassifier() *Classifier {
	return &Classifier{seen: make(map[string]models.FinancialCategory)}
}

func (c *Classifier) Classify(label string) models.FinancialCategory {
	if cat, ok := c.seen[label]; ok {
		return cat
	}
	cat := Classify(label)
	c.seen[label] = cat
	return cat
}

// Mapping returns a copy of every label classified so far.
func (c *Classifier) Mapping() map[string]models.FinancialCategory {
	out := make(map[string]models.FinancialCategory, len(c.seen))
	for k, v := range c.seen {
		out[k] = v
	}
	return out
}
