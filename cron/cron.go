package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/petgroomhq/grooming-app/db"
	"github.com/petgroomhq/grooming-app/models"
	"github.com/petgroomhq/grooming-app/utils"
	"github.com/robfig/cron/v3"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments roughly an hour out
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders finds confirmed appointments starting in about an
// hour and emails the customer.
func sendAppointmentReminders() {
	loc := utils.ShopLocation()
	now := time.Now().In(loc)
	today := now.Format("2006-01-02")

	var appointments []models.Appointment
	err := db.DB.Preload("Customer").Preload("Pet").Preload("Professional").
		Where("status = ? AND date = ?", models.StatusConfirmed, today).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		start, err := time.ParseInLocation("2006-01-02 15:04", appointment.Date+" "+appointment.Time, loc)
		if err != nil {
			log.Printf("Appointment %d has unparseable time %q: %v", appointment.ID, appointment.Time, err)
			continue
		}
		until := start.Sub(now)
		if until < 55*time.Minute || until > 65*time.Minute {
			continue
		}

		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Customer.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	professional := "our team"
	if appointment.Professional != nil {
		professional = appointment.Professional.Name
	}

	subject := fmt.Sprintf("Reminder: %s appointment for %s", appointment.Service, appointment.Pet.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that %s's appointment starts in about an hour.</p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Service:</strong> %s</li>
			<li><strong>With:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
		</ul>
		<p>Please arrive on time. Cancellations require at least 2 hours notice.</p>
	`, appointment.Customer.Name, appointment.Pet.Name, appointment.ReferenceCode,
		appointment.Service, professional, appointment.Date, appointment.Time,
		appointment.DurationMinutes)

	return utils.SendEmail(appointment.Customer.Email, subject, body)
}
