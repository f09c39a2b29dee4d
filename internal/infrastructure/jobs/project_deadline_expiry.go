package jobs

import (
	"context"
	"log"
	"time"

	"brickvest.backend/internal/domain/entities"
	domainRepos "brickvest.backend/internal/domain/repositories"
)

// ProjectDeadlineExpiryJob closes out active projects whose funding deadline
// has passed: fully funded projects transition to FUNDED, the rest to
// CANCELLED.
type ProjectDeadlineExpiryJob struct {
	projects    domainRepos.ProjectRepository
	investments domainRepos.InvestmentRepository
	uow         domainRepos.UnitOfWork
	interval    time.Duration
	stop        chan struct{}
}

func NewProjectDeadlineExpiryJob(
	projects domainRepos.ProjectRepository,
	investments domainRepos.InvestmentRepository,
	uow domainRepos.UnitOfWork,
) *ProjectDeadlineExpiryJob {
	return &ProjectDeadlineExpiryJob{
		projects:    projects,
		investments: investments,
		uow:         uow,
		interval:    time.Minute,
		stop:        make(chan struct{}),
	}
}

func (j *ProjectDeadlineExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting project deadline expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Project deadline expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Project deadline expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredProjects(ctx)
		}
	}
}

func (j *ProjectDeadlineExpiryJob) Stop() {
	close(j.stop)
}

func (j *ProjectDeadlineExpiryJob) processExpiredProjects(ctx context.Context) {
	expired, err := j.projects.ListExpiredActive(ctx, time.Now(), 100)
	if err != nil {
		log.Printf("❌ Error fetching expired projects: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	log.Printf("🔄 Processing %d expired projects...", len(expired))

	for _, p := range expired {
		projectID := p.ID
		err := j.uow.Do(ctx, func(txCtx context.Context) error {
			raised, err := j.investments.SumCompletedByProject(txCtx, projectID)
			if err != nil {
				return err
			}

			project, err := j.projects.GetByID(txCtx, projectID)
			if err != nil {
				return err
			}

			status := entities.ProjectStatusCancelled
			if raised.GreaterThanOrEqual(project.FundingGoal) {
				status = entities.ProjectStatusFunded
			}

			if status == entities.ProjectStatusCancelled {
				cancelled, err := j.investments.CancelPendingByProject(txCtx, projectID)
				if err != nil {
					return err
				}
				if cancelled > 0 {
					log.Printf("↩️ Cancelled %d pending investments on project %s", cancelled, projectID)
				}
			}

			project.FundingRaised = raised
			project.Status = status
			return j.projects.Update(txCtx, project)
		})
		if err != nil {
			log.Printf("❌ Error expiring project %s: %v", projectID, err)
			continue
		}
	}

	log.Printf("✅ Processed %d expired projects", len(expired))
}
