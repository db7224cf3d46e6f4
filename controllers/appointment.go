package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/petgroomhq/grooming-app/db"
	"github.com/petgroomhq/grooming-app/models"
	"github.com/petgroomhq/grooming-app/redis"
	"github.com/petgroomhq/grooming-app/scheduling"
	"github.com/petgroomhq/grooming-app/utils"
)

// Sched is the scheduling core instance, wired in main.
var Sched *scheduling.Scheduler

func InitScheduler(s *scheduling.Scheduler) {
	Sched = s
}

// respondReject maps a business-rule rejection to an HTTP response. Storage
// errors fall through to 500.
func respondReject(c *fiber.Ctx, err error) error {
	if rej, ok := scheduling.AsReject(err); ok {
		status := fiber.StatusInternalServerError
		switch rej.Kind {
		case scheduling.KindValidation:
			status = fiber.StatusBadRequest
		case scheduling.KindNotFound:
			status = fiber.StatusNotFound
		case scheduling.KindConflict, scheduling.KindGap, scheduling.KindNoProfessional:
			status = fiber.StatusConflict
		case scheduling.KindState:
			status = fiber.StatusUnprocessableEntity
		case scheduling.KindPolicy:
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(fiber.Map{
			"message":   rej.Message,
			"code":      rej.Kind,
			"rejection": rej,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
		Message: "Unexpected error",
		Error:   err.Error(),
	})
}

// GetAvailability returns open slots for a date and service, for one
// professional (?professional_id=) or for the whole roster. Per-professional
// results are cached in redis behind a day version key.
func GetAvailability(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	date := c.Query("date")
	service, err := models.ParseServiceType(c.Query("service"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid service",
			Error:   err.Error(),
		})
	}
	duration := c.QueryInt("duration_minutes")

	if proID := c.QueryInt("professional_id"); proID > 0 {
		version := redis.DayVersion(c.Context(), companyID, uint(proID), date)
		key := redis.SlotCacheKey(companyID, uint(proID), date, string(service), duration, version)
		if slots, ok := redis.GetCachedSlots(c.Context(), key); ok {
			return c.JSON(fiber.Map{"date": date, "service": service, "slots": slots, "cached": true})
		}

		slots, err := Sched.Availability(c.Context(), companyID, uint(proID), date, service, duration)
		if err != nil {
			return respondReject(c, err)
		}
		redis.StoreCachedSlots(c.Context(), key, slots)
		return c.JSON(fiber.Map{"date": date, "service": service, "slots": slots})
	}

	roster, err := Sched.AvailabilityAll(c.Context(), companyID, date, service, duration)
	if err != nil {
		return respondReject(c, err)
	}
	return c.JSON(fiber.Map{"date": date, "service": service, "professionals": roster})
}

// CreateAppointment books a new appointment, auto-assigning the least-loaded
// professional when none is given.
func CreateAppointment(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	var body struct {
		PetID           uint   `json:"pet_id"`
		CustomerID      uint   `json:"customer_id"`
		ProfessionalID  *uint  `json:"professional_id"`
		Service         string `json:"service"`
		Date            string `json:"date"`
		Time            string `json:"time"`
		DurationMinutes int    `json:"duration_minutes"`
		Notes           string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	appointment, err := Sched.Create(c.Context(), scheduling.CreateInput{
		CompanyID:       companyID,
		PetID:           body.PetID,
		CustomerID:      body.CustomerID,
		ProfessionalID:  body.ProfessionalID,
		Service:         models.ServiceType(body.Service),
		Date:            body.Date,
		Time:            body.Time,
		DurationMinutes: body.DurationMinutes,
		Notes:           body.Notes,
	})
	if err != nil {
		return respondReject(c, err)
	}

	if appointment.ProfessionalID != nil {
		redis.BumpDayVersion(c.Context(), companyID, *appointment.ProfessionalID, appointment.Date)
	}
	go sendBookingConfirmation(appointment)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// CheckInAppointment marks the customer's arrival.
func CheckInAppointment(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid appointment ID"})
	}

	result, err := Sched.CheckIn(c.Context(), companyID, uint(id))
	if err != nil {
		return respondReject(c, err)
	}
	return c.JSON(result)
}

// StartAppointment moves a checked-in appointment to in progress.
func StartAppointment(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid appointment ID"})
	}

	appointment, err := Sched.Start(c.Context(), companyID, uint(id))
	if err != nil {
		return respondReject(c, err)
	}
	return c.JSON(appointment)
}

// CheckOutAppointment completes the service, optionally attaching notes and
// an after photo (multipart "photo" field, uploaded to cloudinary).
func CheckOutAppointment(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid appointment ID"})
	}

	notes := c.FormValue("notes")
	photoURL := ""
	if file, err := c.FormFile("photo"); err == nil {
		src, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Failed to read photo",
				Error:   err.Error(),
			})
		}
		defer src.Close()

		photoURL, err = utils.UploadPetPhoto(src, fmt.Sprintf("appointment-%d", id), "checkout-photos")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to upload photo",
				Error:   err.Error(),
			})
		}
	}

	appointment, err := Sched.CheckOut(c.Context(), companyID, uint(id), notes, photoURL)
	if err != nil {
		return respondReject(c, err)
	}
	return c.JSON(appointment)
}

// CancelAppointment cancels a booking. Owners and managers may cancel inside
// the 2-hour window (with the late fee); customers may not.
func CancelAppointment(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	role, _ := c.Locals("role").(string)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid appointment ID"})
	}

	appointment, err := Sched.Cancel(c.Context(), companyID, uint(id), models.IsPrivilegedRole(role))
	if err != nil {
		return respondReject(c, err)
	}

	if appointment.ProfessionalID != nil {
		redis.BumpDayVersion(c.Context(), companyID, *appointment.ProfessionalID, appointment.Date)
	}
	return c.JSON(appointment)
}

// GetWeeklySchedule returns 7 consecutive days of non-cancelled appointments
// starting at ?start=YYYY-MM-DD.
func GetWeeklySchedule(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	start := c.Query("start")
	if start == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "start date is required"})
	}

	week, err := Sched.WeeklySchedule(c.Context(), companyID, start)
	if err != nil {
		return respondReject(c, err)
	}
	return c.JSON(fiber.Map{"start": start, "days": week})
}

// GetAllAppointments lists the company's appointments, optionally filtered by
// date or status.
func GetAllAppointments(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	query := db.DB.Preload("Pet").Preload("Customer").Preload("Professional").
		Where("company_id = ?", companyID)
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("date asc, time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns an appointment by ID.
func GetAppointment(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Preload("Pet").Preload("Customer").Preload("Professional").
		Where("company_id = ?", companyID).
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// sendBookingConfirmation emails the customer. Failures are logged, never
// surfaced to the booking request.
func sendBookingConfirmation(appointment *models.Appointment) {
	var customer models.User
	if err := db.DB.First(&customer, appointment.CustomerID).Error; err != nil {
		log.Printf("confirmation email: customer %d not found: %v", appointment.CustomerID, err)
		return
	}
	var pet models.Pet
	if err := db.DB.First(&pet, appointment.PetID).Error; err != nil {
		log.Printf("confirmation email: pet %d not found: %v", appointment.PetID, err)
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been booked.</p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Pet:</strong> %s</li>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
			<li><strong>Duration:</strong> %d minutes</li>
		</ul>
		<p>Please arrive on time. Cancellations require at least 2 hours notice.</p>
	`, customer.Name, appointment.ReferenceCode, pet.Name, appointment.Service,
		appointment.Date, appointment.Time, appointment.DurationMinutes)

	if err := utils.SendEmail(customer.Email, "Appointment Confirmation", body); err != nil {
		log.Printf("confirmation email for appointment %d failed: %v", appointment.ID, err)
	}
}
