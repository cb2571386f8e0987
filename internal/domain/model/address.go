package model

// ユーザーに埋め込まれる住所
type Address struct {
	//home / office など
	AddressType string `json:"address_type"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`

	//このユーザーのデフォルト住所か
	IsDefault bool `json:"is_default"`
}
