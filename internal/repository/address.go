package repository

import (
	"github.com/Payphone-Digital/dashboard/internal/model"
	"github.com/Payphone-Digital/dashboard/pkg/database"
	"gorm.io/gorm"
)

// AddressListSpec is how the addresses list is searched and sorted.
var AddressListSpec = database.ListSpec{
	SearchColumns: []string{"consignee", "phone", "address", "city"},
	SortColumns: map[string]string{
		"id":         "id",
		"consignee":  "consignee",
		"province":   "province",
		"city":       "city",
		"status":     "status",
		"created_at": "created_at",
	},
}

type AddressRepository struct {
	crudRepository[model.Address]
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{crudRepository[model.Address]{db: db, table: "addresses", lister: AddressListSpec}}
}
