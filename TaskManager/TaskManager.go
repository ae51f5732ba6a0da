package TaskManager

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
	StatusFailed     = "Failed"
)

// TaskList tracks the stages of one pipeline run.
type TaskList struct {
	RunID string
	Tasks []IconTask
	sync.Mutex
}

type IconTask struct {
	TaskUID  string        `json:"task_uid"`
	Type     string        `json:"type"`
	Status   string        `json:"status"`
	Returned interface{}   `json:"output"`
	Done     bool          `json:"done"`
	Started  time.Time     `json:"started"`
	Elapsed  time.Duration `json:"elapsed"`
}

func NewTaskList() *TaskList {
	return &TaskList{
		RunID: generateUUID(),
		Tasks: make([]IconTask, 0),
	}
}

func (tl *TaskList) NewTask(taskType string) string {
	tl.Lock()
	defer tl.Unlock()

	var newTask = IconTask{
		TaskUID:  generateUUID(),
		Type:     taskType,
		Status:   StatusPending,
		Returned: "",
		Done:     false,
	}

	tl.Tasks = append(tl.Tasks, newTask)

	return newTask.TaskUID
}

func (tl *TaskList) GetTask(taskUID string) IconTask {
	tl.Lock()
	defer tl.Unlock()

	if i := tl.find(taskUID); i >= 0 {
		return tl.Tasks[i]
	}

	return IconTask{}
}

func (tl *TaskList) StartTask(taskUID string) {
	tl.Lock()
	defer tl.Unlock()

	if i := tl.find(taskUID); i >= 0 {
		tl.Tasks[i].Status = StatusInProgress
		tl.Tasks[i].Started = time.Now()
	}
}

// FinishTask marks the task done with its output, or failed when err is set.
func (tl *TaskList) FinishTask(taskUID string, output interface{}, err error) {
	tl.Lock()
	defer tl.Unlock()

	i := tl.find(taskUID)
	if i < 0 {
		return
	}

	tl.Tasks[i].Done = true
	tl.Tasks[i].Returned = output
	if !tl.Tasks[i].Started.IsZero() {
		tl.Tasks[i].Elapsed = time.Since(tl.Tasks[i].Started)
	}
	if err != nil {
		tl.Tasks[i].Status = StatusFailed
		tl.Tasks[i].Returned = err.Error()
		return
	}
	tl.Tasks[i].Status = StatusDone
}

// GetTasks returns a copy of the task list.
func (tl *TaskList) GetTasks() []IconTask {
	tl.Lock()
	defer tl.Unlock()

	tasks := make([]IconTask, len(tl.Tasks))
	copy(tasks, tl.Tasks)
	return tasks
}

func (tl *TaskList) find(taskUID string) int {
	for i, task := range tl.Tasks {
		if task.TaskUID == taskUID {
			return i
		}
	}
	return -1
}

func generateUUID() string {
	return uuid.New().String()
}
