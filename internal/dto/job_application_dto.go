package dto

import "time"

type JobApplicationRequest struct {
	CompanyName    string     `json:"company_name"`
	JobTitle       string     `json:"job_title"`
	JobDescription string     `json:"job_description"`
	Location       string     `json:"location"`
	JobURL         string     `json:"job_url"`
	SalaryRange    string     `json:"salary_range"`
	Status         string     `json:"status"`
	AppliedOn      *time.Time `json:"applied_on"`
	Notes          string     `json:"notes"`
}

type ListQuery struct {
	Page     int
	PageSize int
	Status   string
	Type     string
}

func (q ListQuery) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.PageSize
}

// Normalize clamps paging to page >= 1 and 1 <= page_size <= 100.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	return q
}
