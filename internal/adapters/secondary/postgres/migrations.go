package postgres

import "github.com/adamatova/community-api/internal/domain/entity"

// Migrations lists every entity auto-migrated at startup.
var Migrations = []interface{}{
	&entity.Group{},
	&entity.Workshop{},
	&entity.GroupRegistration{},
	&entity.WorkshopRegistration{},
	&entity.Participant{},
	&entity.Administrator{},
	&entity.Announcement{},
	&entity.Notification{},
	&entity.DeviceSubscription{},
}
