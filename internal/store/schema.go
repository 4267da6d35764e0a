package store

// SchemaSQL defines the work_order and report_run tables.
const SchemaSQL = `
    -- ==========================================================================
    -- WORK ORDER TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS work_order SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS seq ON work_order TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS description ON work_order TYPE string;
    DEFINE FIELD IF NOT EXISTS created_raw ON work_order TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS building_raw ON work_order TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS floor ON work_order TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS room ON work_order TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS age_days ON work_order TYPE option<int>;
    -- Set from the run only while empty; see SaveWorkOrders.
    DEFINE FIELD IF NOT EXISTS inspection_status ON work_order TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS building_code ON work_order TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS building_name ON work_order TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS fields ON work_order TYPE option<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS last_run ON work_order TYPE string;
    DEFINE FIELD IF NOT EXISTS created ON work_order TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated ON work_order TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS work_order_status ON work_order FIELDS inspection_status;
    DEFINE INDEX IF NOT EXISTS work_order_building ON work_order FIELDS building_code;
    DEFINE INDEX IF NOT EXISTS work_order_last_run ON work_order FIELDS last_run;

    -- ==========================================================================
    -- REPORT RUN TABLE (one row per pipeline run)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS report_run SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS source ON report_run TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS as_of ON report_run TYPE string;
    DEFINE FIELD IF NOT EXISTS total ON report_run TYPE int;
    DEFINE FIELD IF NOT EXISTS overdue ON report_run TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS summary ON report_run TYPE option<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS created ON report_run TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS report_run_created ON report_run FIELDS created;
`
