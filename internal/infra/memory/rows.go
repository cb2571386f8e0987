package memory

import (
	"slices"

	"marketplace/internal/domain/model"

	"github.com/lib/pq"
)

type (
	userRow     = model.User
	sellerRow   = model.Seller
	categoryRow = model.Category
	productRow  = model.Product
	cartRow     = model.Cart
	orderRow    = model.Order
	returnRow   = model.Return
	reviewRow   = model.Review
)

// 格納時と取り出し時に複製して、呼び出し側との共有を切る

func cloneAttachment(a *model.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}
	c := *a
	c.Data = slices.Clone(a.Data)
	return &c
}

func cloneAttachments(in []model.Attachment) []model.Attachment {
	if in == nil {
		return nil
	}
	out := make([]model.Attachment, len(in))
	for i := range in {
		out[i] = *cloneAttachment(&in[i])
	}
	return out
}

func cloneStrings(in pq.StringArray) pq.StringArray {
	if in == nil {
		return nil
	}
	return slices.Clone(in)
}

func cloneUser(u model.User) model.User {
	u.ProfilePicture = cloneAttachment(u.ProfilePicture)
	u.Addresses = slices.Clone(u.Addresses)
	u.WishlistIDs = cloneStrings(u.WishlistIDs)
	u.FollowingSellerIDs = cloneStrings(u.FollowingSellerIDs)
	return u
}

func cloneSeller(s model.Seller) model.Seller {
	s.ProfilePhoto = cloneAttachment(s.ProfilePhoto)
	s.CoverPhoto = cloneAttachment(s.CoverPhoto)
	return s
}

func cloneProduct(p model.Product) model.Product {
	p.ProductImages = cloneAttachments(p.ProductImages)
	p.CategoryIDs = cloneStrings(p.CategoryIDs)
	return p
}

func cloneCart(c model.Cart) model.Cart {
	c.Items = slices.Clone(c.Items)
	return c
}

func cloneOrder(o model.Order) model.Order {
	o.Items = slices.Clone(o.Items)
	o.StatusHistory = slices.Clone(o.StatusHistory)
	if o.ShipmentDetails != nil {
		sd := *o.ShipmentDetails
		if sd.EstimatedDelivery != nil {
			t := *sd.EstimatedDelivery
			sd.EstimatedDelivery = &t
		}
		o.ShipmentDetails = &sd
	}
	return o
}

func cloneReview(r model.Review) model.Review {
	r.Images = cloneAttachments(r.Images)
	return r
}
