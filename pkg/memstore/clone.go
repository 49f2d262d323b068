package memstore

import "benigna-backend/entities"

func cloneUser(u *entities.User) *entities.User {
	c := *u
	return &c
}

func cloneInstitution(i *entities.Institution) *entities.Institution {
	c := *i
	c.WorkingHours = append([]entities.WorkingHours(nil), i.WorkingHours...)
	c.AcceptedCategories = append([]string(nil), i.AcceptedCategories...)
	return &c
}

func cloneDonation(d *entities.Donation) *entities.Donation {
	c := *d
	c.Images = append([]string(nil), d.Images...)
	if d.InstitutionID != nil {
		id := *d.InstitutionID
		c.InstitutionID = &id
	}
	if d.ScheduledDate != nil {
		t := *d.ScheduledDate
		c.ScheduledDate = &t
	}
	if d.DeliveredDate != nil {
		t := *d.DeliveredDate
		c.DeliveredDate = &t
	}
	return &c
}

func cloneCategory(cat *entities.Category) *entities.Category {
	c := *cat
	c.Subcategories = make([]*entities.Subcategory, 0, len(cat.Subcategories))
	for _, sub := range cat.Subcategories {
		s := *sub
		c.Subcategories = append(c.Subcategories, &s)
	}
	return &c
}
