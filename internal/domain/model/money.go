package model

import "github.com/shopspring/decimal"

func init() {
	//金額はJSONでは数値で返す
	decimal.MarshalJSONWithoutQuotes = true
}

// DBの numeric(...,2) と同じ桁に揃える
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
