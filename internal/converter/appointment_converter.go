package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/scheduling"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		Date:            appointment.Date.Format(scheduling.DateFormat),
		TimeLabel:       appointment.TimeLabel,
		Status:          string(appointment.Status),
		Mode:            appointment.Mode,
		AppointmentType: appointment.AppointmentType,
		ClinicalReason:  appointment.ClinicalReason,
		Source:          appointment.Source,
		PatientName:     appointment.PatientName,
		PatientPhone:    appointment.PatientPhone,
		PatientEmail:    appointment.PatientEmail,
		PatientAge:      appointment.PatientAge,
		ReferralName:    appointment.ReferralName,
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.PatientDOB != nil {
		response.PatientDOB = appointment.PatientDOB.Format(scheduling.DateFormat)
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.User.FullName
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AppointmentToScheduling normalizes a stored appointment into the shape the
// slot generator counts capacity with.
func AppointmentToScheduling(appointment *entity.Appointment) scheduling.BookedAppointment {
	booked := scheduling.BookedAppointment{
		Date:      appointment.Date.Format(scheduling.DateFormat),
		TimeLabel: appointment.TimeLabel,
		Status:    string(appointment.Status),
		Mode:      scheduling.Mode(appointment.Mode),
	}
	if appointment.DoctorID != nil {
		booked.DoctorID = appointment.DoctorID.String()
	}
	return booked
}

// AppointmentsToScheduling normalizes a batch of stored appointments.
func AppointmentsToScheduling(appointments []entity.Appointment) []scheduling.BookedAppointment {
	booked := make([]scheduling.BookedAppointment, len(appointments))
	for i := range appointments {
		booked[i] = AppointmentToScheduling(&appointments[i])
	}
	return booked
}
