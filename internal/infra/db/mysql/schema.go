package mysql

// Schema creates the three record tables when they are missing.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS reworks (
  id VARCHAR(64) NOT NULL PRIMARY KEY,
  event_date VARCHAR(32) NOT NULL,
  station VARCHAR(128) NOT NULL,
  defect_type VARCHAR(128) NOT NULL,
  quantity INT NOT NULL DEFAULT 1,
  shift VARCHAR(32) NOT NULL DEFAULT '',
  operator_group VARCHAR(64) NOT NULL DEFAULT '',
  material_batch VARCHAR(64) NOT NULL DEFAULT '',
  severity VARCHAR(16) NOT NULL DEFAULT '',
  suspected_root_cause TEXT NOT NULL,
  remarks TEXT NOT NULL,
  created_at DATETIME(6) NOT NULL,
  KEY idx_reworks_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS actions (
  id VARCHAR(64) NOT NULL PRIMARY KEY,
  defect_type VARCHAR(128) NOT NULL,
  description TEXT NOT NULL,
  responsible_person VARCHAR(128) NOT NULL,
  target_date VARCHAR(32) NOT NULL,
  status VARCHAR(16) NOT NULL,
  effectiveness_review TEXT NOT NULL,
  created_at DATETIME(6) NOT NULL,
  updated_at DATETIME(6) NOT NULL,
  KEY idx_actions_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS knowledge (
  id VARCHAR(64) NOT NULL PRIMARY KEY,
  problem TEXT NOT NULL,
  root_cause TEXT NOT NULL,
  corrective_action TEXT NOT NULL,
  before_results TEXT NOT NULL,
  after_results TEXT NOT NULL,
  station VARCHAR(128) NOT NULL DEFAULT '',
  defect_type VARCHAR(128) NOT NULL DEFAULT '',
  date_closed VARCHAR(32) NOT NULL DEFAULT '',
  image_url VARCHAR(512) NOT NULL DEFAULT '',
  created_at DATETIME(6) NOT NULL,
  KEY idx_knowledge_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}
